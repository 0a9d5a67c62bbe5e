// Package soap implements a small RPC-style SOAP 1.1 client for the SugarCRM
// SOAP service.
//
// It handles envelope construction, SOAPAction routing, fault detection and
// decoding of the <return> element. Parameter and result shapes are owned by
// the caller: any value encoding/xml can marshal is accepted as a request.
//
// # Subpackages
//
//   - auth: HTTP-level authentication handlers (Basic, NTLM)
//   - transport: HTTP/TLS transport layer
//
// # Usage
//
//	tr := transport.NewHTTPTransport(transport.WithTimeout(30 * time.Second))
//	c := soap.NewClient("https://crm.example.com/soap.php", tr)
//
//	var out loginResult
//	err := c.Call(ctx, soap.OperationLogin, loginRequest{...}, &out)
package soap
