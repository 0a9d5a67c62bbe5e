// Package auth provides HTTP authentication handlers for SOAP connections.
//
// SugarCRM itself authenticates with the login procedure; these handlers are
// for deployments where the SOAP endpoint sits behind an HTTP gateway that
// demands its own credentials.
//
// # Supported Authentication Methods
//
//   - Basic: HTTP Basic authentication (use only over TLS)
//   - NTLM: NT LAN Manager authentication (via github.com/Azure/go-ntlmssp)
//
// # Usage
//
//	a, err := auth.New(auth.SchemeNTLM, auth.Credentials{
//	    Username: "svc-crm",
//	    Password: "password",
//	    Domain:   "CORP",
//	})
//	tr := transport.NewHTTPTransport(transport.WithRoundTripper(a.Transport))
package auth
