// Package auth provides HTTP authentication handlers for SOAP connections.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Authenticator defines the interface for authentication handlers.
type Authenticator interface {
	// Transport wraps an http.RoundTripper with authentication.
	Transport(base http.RoundTripper) http.RoundTripper

	// Name returns the authentication scheme name.
	Name() string
}

// Credentials holds HTTP authentication credentials. They are independent of
// the CRM login credentials and only used when the service sits behind an
// authenticating proxy or IIS.
type Credentials struct {
	// Username is the user name for authentication.
	Username string

	// Password is the password for authentication.
	Password string

	// Domain is the optional domain for NTLM authentication.
	Domain string
}

// Validate checks that required credential fields are populated.
func (c *Credentials) Validate() error {
	if c.Username == "" {
		return errors.New("username is required")
	}
	if c.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// Scheme names accepted by New.
const (
	SchemeNone  = "none"
	SchemeBasic = "basic"
	SchemeNTLM  = "ntlm"
)

// New returns the Authenticator for scheme, or nil for "none"/"".
func New(scheme string, creds Credentials) (Authenticator, error) {
	switch strings.ToLower(scheme) {
	case "", SchemeNone:
		return nil, nil
	case SchemeBasic:
		if err := creds.Validate(); err != nil {
			return nil, fmt.Errorf("basic auth: %w", err)
		}
		return NewBasicAuth(creds), nil
	case SchemeNTLM:
		if err := creds.Validate(); err != nil {
			return nil, fmt.Errorf("ntlm auth: %w", err)
		}
		return NewNTLMAuth(creds), nil
	default:
		return nil, fmt.Errorf("unknown auth scheme %q", scheme)
	}
}
