package auth

import (
	"net/http"

	"github.com/Azure/go-ntlmssp"
)

// NTLMAuth authenticates against IIS-style gateways that demand NTLM.
type NTLMAuth struct {
	creds Credentials
}

// NewNTLMAuth returns an NTLM handler for creds.
func NewNTLMAuth(creds Credentials) *NTLMAuth {
	return &NTLMAuth{creds: creds}
}

// Name returns "NTLM".
func (a *NTLMAuth) Name() string {
	return "NTLM"
}

// Transport wraps base with github.com/Azure/go-ntlmssp. The negotiator reads
// the account from the request's Basic auth fields, as DOMAIN\user when a
// domain is configured.
func (a *NTLMAuth) Transport(base http.RoundTripper) http.RoundTripper {
	return &credentialTransport{
		user: a.account(),
		pass: a.creds.Password,
		next: ntlmssp.Negotiator{RoundTripper: base},
	}
}

// GetCredentials returns the domain, user and password.
func (a *NTLMAuth) GetCredentials() (string, string, string) {
	return a.creds.Domain, a.creds.Username, a.creds.Password
}

func (a *NTLMAuth) account() string {
	if a.creds.Domain == "" {
		return a.creds.Username
	}
	return a.creds.Domain + `\` + a.creds.Username
}
