package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrUnauthorized is returned when the server responds with 401 Unauthorized.
// Use errors.Is(err, ErrUnauthorized) to check for authentication failures.
var ErrUnauthorized = errors.New("transport: authentication failed (401 Unauthorized)")

const (
	// ContentTypeSOAP is the content type for SOAP 1.1 messages.
	ContentTypeSOAP = "text/xml; charset=utf-8"

	// HeaderSOAPAction carries the invoked procedure for SOAP 1.1.
	HeaderSOAPAction = "SOAPAction"

	// HeaderRequestID carries the per-call correlation ID.
	HeaderRequestID = "X-Request-ID"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 60 * time.Second

	// maxErrorBody caps how much of an error response is echoed in errors.
	maxErrorBody = 3000
)

type requestIDKey struct{}

// ContextWithRequestID attaches a correlation ID that Post sends as
// X-Request-ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the correlation ID stored in ctx, if any.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// HTTPTransport handles HTTP/HTTPS communication for SOAP calls.
type HTTPTransport struct {
	client  *resty.Client
	base    *http.Transport
	wrap    func(http.RoundTripper) http.RoundTripper
	headers map[string]string
}

// HTTPTransportOption configures an HTTPTransport.
type HTTPTransportOption func(*HTTPTransport)

// NewHTTPTransport creates a new HTTP transport with the given options.
func NewHTTPTransport(opts ...HTTPTransportOption) *HTTPTransport {
	t := &HTTPTransport{
		client: resty.New().SetTimeout(DefaultTimeout),
		base: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			// NTLM gateways need persistent connections for the handshake
			DisableKeepAlives:   false,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     90 * time.Second,
		},
		headers: make(map[string]string),
	}

	for _, opt := range opts {
		opt(t)
	}

	var rt http.RoundTripper = t.base
	if t.wrap != nil {
		rt = t.wrap(rt)
	}
	t.client.SetTransport(rt)

	return t
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) HTTPTransportOption {
	return func(t *HTTPTransport) {
		if d > 0 {
			t.client.SetTimeout(d)
		}
	}
}

// WithInsecureSkipVerify configures TLS to skip certificate verification.
// WARNING: Only use this for testing. Never use in production.
func WithInsecureSkipVerify(skip bool) HTTPTransportOption {
	return func(t *HTTPTransport) {
		if skip {
			slog.Warn("TLS certificate verification disabled; use only for testing")
		}
		if t.base.TLSClientConfig == nil {
			t.base.TLSClientConfig = &tls.Config{
				MinVersion: tls.VersionTLS12,
			}
		}
		t.base.TLSClientConfig.InsecureSkipVerify = skip
	}
}

// WithTLSConfig sets a custom TLS configuration.
// NOTE: MinVersion is enforced to be at least TLS 1.2.
func WithTLSConfig(cfg *tls.Config) HTTPTransportOption {
	return func(t *HTTPTransport) {
		if cfg.MinVersion < tls.VersionTLS12 {
			cfg.MinVersion = tls.VersionTLS12
		}
		t.base.TLSClientConfig = cfg
	}
}

// WithRoundTripper wraps the base HTTP transport, typically with an
// authentication handler from the auth package.
func WithRoundTripper(wrap func(http.RoundTripper) http.RoundTripper) HTTPTransportOption {
	return func(t *HTTPTransport) {
		t.wrap = wrap
	}
}

// WithHeader adds a static header sent on every request.
func WithHeader(name, value string) HTTPTransportOption {
	return func(t *HTTPTransport) {
		t.headers[name] = value
	}
}

// Post sends a SOAP request and returns the response body.
//
// SOAP 1.1 servers report faults with HTTP 500, so an error status whose body
// is a SOAP fault is returned as a normal body for the caller to decode.
func (t *HTTPTransport) Post(ctx context.Context, endpoint, action string, body []byte) ([]byte, error) {
	req := t.client.R().
		SetContext(ctx).
		SetHeaders(t.headers).
		SetHeader("Content-Type", ContentTypeSOAP).
		SetHeader(HeaderSOAPAction, `"`+action+`"`).
		SetBody(body)

	if id := RequestIDFromContext(ctx); id != "" {
		req.SetHeader(HeaderRequestID, id)
	}

	resp, err := req.Post(endpoint)
	if err != nil {
		return nil, fmt.Errorf("transport: request failed: %w", err)
	}

	respBody := resp.Body()

	// Check HTTP status code
	switch status := resp.StatusCode(); {
	case status == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case status == http.StatusForbidden:
		return nil, fmt.Errorf("transport: access denied (403 Forbidden)")
	case status >= 400:
		if isFaultBody(respBody) {
			return respBody, nil
		}
		// Include response body in error for debugging
		bodyPreview := string(respBody)
		if len(bodyPreview) > maxErrorBody {
			bodyPreview = bodyPreview[:maxErrorBody] + "..."
		}
		return nil, fmt.Errorf("transport: HTTP %d: %s", status, bodyPreview)
	}

	return respBody, nil
}

func isFaultBody(body []byte) bool {
	return bytes.Contains(body, []byte(":Fault")) || bytes.Contains(body, []byte("<Fault"))
}

// Client returns the underlying HTTP client for advanced configuration.
func (t *HTTPTransport) Client() *http.Client {
	return t.client.GetClient()
}

// CloseIdleConnections closes any idle connections in the transport.
// This forces a fresh NTLM handshake for subsequent requests.
func (t *HTTPTransport) CloseIdleConnections() {
	t.client.GetClient().CloseIdleConnections()
}

// EndpointFromWSDL turns a WSDL location ("…/soap.php?wsdl") into the service
// endpoint by dropping the wsdl query parameter. Other query parameters are
// preserved.
func EndpointFromWSDL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("transport: parse endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("transport: unsupported endpoint scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("transport: endpoint %q has no host", raw)
	}

	q := u.Query()
	for key := range q {
		if strings.EqualFold(key, "wsdl") {
			q.Del(key)
		}
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
