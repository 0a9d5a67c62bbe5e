package client

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/smnsjas/go-sugarcrm/soap"
	"github.com/smnsjas/go-sugarcrm/soap/auth"
	"github.com/smnsjas/go-sugarcrm/soap/transport"
)

// loginVersion is the user_auth.version the service expects.
const loginVersion = "1"

// Client is a SugarCRM SOAP client holding one authenticated session.
//
// After New returns, the session is read-only and the client is safe for
// concurrent use. Login may be called again to replace the session.
type Client struct {
	mu sync.RWMutex

	config    Config
	endpoint  string
	transport *transport.HTTPTransport
	rpc       *soap.Client
	logger    *slog.Logger

	sessionID string
}

// Option configures a Client.
type Option func(*options)

type options struct {
	logger *slog.Logger
	poster soap.Poster
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithPoster replaces the HTTP transport, e.g. with a recording or
// instrumented implementation.
func WithPoster(p soap.Poster) Option {
	return func(o *options) {
		o.poster = p
	}
}

// New creates a client and logs in. It fails if the configuration is invalid
// or login does not yield a session; authentication failures wrap
// ErrAuthentication.
func New(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.ApplicationName == "" {
		cfg.ApplicationName = DefaultApplicationName
	}

	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	endpoint, err := transport.EndpointFromWSDL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	trOpts := []transport.HTTPTransportOption{
		transport.WithTimeout(cfg.Timeout),
		transport.WithInsecureSkipVerify(cfg.InsecureSkipVerify),
	}

	authenticator, err := auth.New(string(cfg.HTTPAuth), cfg.httpCredentials())
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if authenticator != nil {
		trOpts = append(trOpts, transport.WithRoundTripper(authenticator.Transport))
	}

	tr := transport.NewHTTPTransport(trOpts...)

	var poster soap.Poster = tr
	if o.poster != nil {
		poster = o.poster
	}

	logger := o.logger.With("endpoint", endpoint)

	c := &Client{
		config:    cfg,
		endpoint:  endpoint,
		transport: tr,
		rpc:       soap.NewClient(endpoint, poster, soap.WithLogger(logger)),
		logger:    logger,
	}

	if err := c.Login(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

// Login authenticates with the configured credentials and stores the
// returned session ID. An empty, "0" or "-1" ID is an authentication failure.
// There is no retry.
func (c *Client) Login(ctx context.Context) error {
	req := loginRequest{
		UserAuth: userAuth{
			UserName: c.config.Username,
			Password: c.config.Password,
			Version:  loginVersion,
		},
		ApplicationName: c.config.ApplicationName,
	}

	var res EntryValue
	if err := c.rpc.Call(ctx, soap.OperationLogin, req, &res); err != nil {
		c.logger.WarnContext(ctx, "sugarcrm login failed", "user_name", c.config.Username, "error", err)
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}

	id := strings.TrimSpace(res.ID)
	if id == "" || id == "0" || id == "-1" {
		c.logger.WarnContext(ctx, "sugarcrm login returned no session", "user_name", c.config.Username)
		return fmt.Errorf("%w: login returned no session id", ErrAuthentication)
	}

	c.mu.Lock()
	c.sessionID = id
	c.mu.Unlock()

	c.logger.InfoContext(ctx, "sugarcrm login succeeded", "user_name", c.config.Username)
	return nil
}

// SessionID returns the current session ID, or "" before login.
func (c *Client) SessionID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionID
}

// Authenticated reports whether the client holds a session.
func (c *Client) Authenticated() bool {
	return c.SessionID() != ""
}

// Endpoint returns the SOAP endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// CloseIdleConnections releases pooled HTTP connections.
func (c *Client) CloseIdleConnections() {
	if c.transport != nil {
		c.transport.CloseIdleConnections()
	}
}

// session returns the session ID or ErrNotAuthenticated.
func (c *Client) session() (string, error) {
	id := c.SessionID()
	if id == "" || c.rpc == nil {
		return "", ErrNotAuthenticated
	}
	return id, nil
}

// call invokes operation and prefixes errors with its name. Remote faults and
// transport errors stay reachable through errors.As / errors.Is.
func (c *Client) call(ctx context.Context, operation string, req, res any) error {
	if err := c.rpc.Call(ctx, operation, req, res); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	return nil
}
