package soap

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/smnsjas/go-sugarcrm/soap/transport"
	"golang.org/x/net/html/charset"
)

// Poster sends a SOAP request body to an endpoint and returns the raw
// response. *transport.HTTPTransport implements it.
type Poster interface {
	Post(ctx context.Context, endpoint, action string, body []byte) ([]byte, error)
}

// Client is an RPC-style SOAP 1.1 client bound to one endpoint.
type Client struct {
	endpoint  string
	namespace string
	transport Poster
	logger    *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithNamespace overrides the target namespace (default NsSugarCRM).
func WithNamespace(ns string) ClientOption {
	return func(c *Client) {
		c.namespace = ns
	}
}

// WithLogger sets the logger used for call tracing.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a new SOAP client.
func NewClient(endpoint string, tr Poster, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:  endpoint,
		namespace: NsSugarCRM,
		transport: tr,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the service URL the client posts to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Call invokes operation with request marshalled as the body element and
// decodes the response's <return> element into result. A nil result skips
// decoding. SOAP faults are returned as *Fault.
func (c *Client) Call(ctx context.Context, operation string, request, result any) error {
	payload, err := xml.Marshal(request)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", operation, err)
	}

	env := NewEnvelope().
		WithTargetNamespace(c.namespace).
		WithEncodingStyle(NsEncoding).
		WithBody(payload)

	requestID := uuid.New().String()
	ctx = transport.ContextWithRequestID(ctx, requestID)

	start := time.Now()
	respBody, err := c.sendEnvelope(ctx, ActionFor(c.namespace, operation), env)
	if err != nil {
		c.logger.DebugContext(ctx, "soap call failed",
			"operation", operation,
			"request_id", requestID,
			"duration", time.Since(start),
			"error", err)
		return err
	}

	c.logger.DebugContext(ctx, "soap call",
		"operation", operation,
		"request_id", requestID,
		"duration", time.Since(start),
		"response_bytes", len(respBody))

	if result == nil {
		return nil
	}
	if err := DecodeReturn(respBody, result); err != nil {
		return fmt.Errorf("parse %s response: %w", operation, err)
	}
	return nil
}

// sendEnvelope marshals and sends a SOAP envelope, returning the response body.
func (c *Client) sendEnvelope(ctx context.Context, action string, env *Envelope) ([]byte, error) {
	body, err := env.Marshal()
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}

	respBody, err := c.transport.Post(ctx, c.endpoint, action, body)
	if err != nil {
		return nil, err
	}

	// Check for SOAP Fault even in successful HTTP responses
	if err := CheckFault(respBody); err != nil {
		return nil, err
	}

	return respBody, nil
}

// DecodeReturn decodes the first <return> element of a SOAP response into out.
// Namespace prefixes are ignored; RPC responses wrap the result as
// <ns1:{operation}Response><return>…</return></ns1:{operation}Response>.
func DecodeReturn(data []byte, out any) error {
	dec := newDecoder(data)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return ErrNoReturn
		}
		if err != nil {
			return err
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "return" {
			return dec.DecodeElement(out, &se)
		}
	}
}

// newDecoder returns an XML decoder that accepts the non-UTF-8 charsets
// (typically ISO-8859-1) PHP SOAP servers declare.
func newDecoder(data []byte) *xml.Decoder {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel
	return dec
}
