package auth

import (
	"log/slog"
	"net/http"
	"sync"
)

// BasicAuth sends the gateway credentials as an HTTP Basic Authorization
// header on every SOAP request.
type BasicAuth struct {
	creds Credentials
}

// NewBasicAuth returns a Basic handler for creds.
func NewBasicAuth(creds Credentials) *BasicAuth {
	return &BasicAuth{creds: creds}
}

// Name returns "Basic".
func (a *BasicAuth) Name() string {
	return "Basic"
}

// Transport wraps base so that each request carries the credentials.
func (a *BasicAuth) Transport(base http.RoundTripper) http.RoundTripper {
	return &credentialTransport{
		user:      a.creds.Username,
		pass:      a.creds.Password,
		next:      base,
		warnPlain: true,
	}
}

// credentialTransport stamps user/pass onto a clone of each request before
// handing it to next. NTLM reuses it to feed the negotiator.
type credentialTransport struct {
	user string
	pass string
	next http.RoundTripper

	// warnPlain logs once when credentials travel over plain HTTP.
	warnPlain bool
	warnOnce  sync.Once
}

// RoundTrip implements http.RoundTripper.
func (t *credentialTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.warnPlain && req.URL.Scheme != "https" {
		t.warnOnce.Do(func() {
			slog.Warn("gateway basic auth over plain HTTP; credentials are sent unencrypted",
				"host", req.URL.Host)
		})
	}

	out := req.Clone(req.Context())
	out.SetBasicAuth(t.user, t.pass)
	return t.next.RoundTrip(out)
}
