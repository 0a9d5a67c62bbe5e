// Package sugarcrm is a thin Go client for the SugarCRM SOAP service (v4_1).
//
// It logs in once, keeps the returned session, and exposes the record
// operations an integration needs: query, fetch by ID, count, insert, relate,
// plus module discovery. Records can be flattened into plain maps.
//
// # Architecture
//
// The library is organized into layers:
//
//	┌─────────────────────────────────────────────────────────┐
//	│  client/          Config, session, record operations    │
//	├─────────────────────────────────────────────────────────┤
//	│  soap/            SOAP 1.1 envelopes, faults, RPC calls │
//	├─────────────────────────────────────────────────────────┤
//	│  soap/transport/  HTTP(S) POST (resty)                  │
//	│  soap/auth/       optional Basic / NTLM gateway auth    │
//	└─────────────────────────────────────────────────────────┘
//
// # Quick Start
//
//	cfg := client.DefaultConfig()
//	cfg.URL = "https://crm.example.com/service/v4_1/soap.php?wsdl"
//	cfg.Username = "admin"
//	cfg.Password = "password"
//
//	c, err := client.New(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	n, err := c.CountRecords(ctx, "Contacts", "contacts.last_name='Doe'")
//
// # Configuration
//
// client.LoadConfig reads SUGARCRM_URL, SUGARCRM_USERNAME, SUGARCRM_PASSWORD
// and related variables. See client.Config.
//
// # Error Handling
//
// Login failures wrap client.ErrAuthentication. Remote faults are returned as
// *soap.Fault; HTTP 401 as transport.ErrUnauthorized:
//
//	var fault *soap.Fault
//	if errors.As(err, &fault) {
//	    log.Printf("CRM fault: %s", fault.String)
//	}
package sugarcrm
