// Package transport provides HTTP/TLS transport for SOAP communication.
//
// The transport layer handles:
//   - HTTP/HTTPS connections (via github.com/go-resty/resty/v2)
//   - TLS configuration
//   - SOAPAction and correlation headers
//   - Request/response handling, including SOAP faults sent with HTTP 500
package transport
