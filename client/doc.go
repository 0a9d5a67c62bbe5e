// Package client provides a high-level API for the SugarCRM SOAP service.
//
// It handles:
//   - Configuration (explicit Config or SUGARCRM_* environment variables)
//   - Login and session handling
//   - Record operations: query, fetch by ID, count, insert, relate
//   - Module discovery: available modules and module fields
//   - Flattening name/value records into plain maps
//
// # Quick Start
//
//	c, err := client.New(ctx, client.Config{
//	    URL:      "https://crm.example.com/service/v4_1/soap.php?wsdl",
//	    Username: "admin",
//	    Password: "password",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := c.QueryRecords(ctx, "Contacts", "contacts.last_name='Doe'",
//	    client.WithMaxResults(20))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, rec := range client.FlattenAll(res.EntryList) {
//	    fmt.Println(rec["id"], rec["first_name"])
//	}
//
// Results are returned as the service sends them. Faults surface as
// *soap.Fault and can be inspected with errors.As.
package client
