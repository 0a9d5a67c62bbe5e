package client

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/smnsjas/go-sugarcrm/soap/auth"
)

// AuthType selects HTTP-level authentication in front of the SOAP endpoint.
type AuthType string

const (
	// AuthNone sends no HTTP credentials (the usual case).
	AuthNone AuthType = auth.SchemeNone
	// AuthBasic uses HTTP Basic authentication.
	AuthBasic AuthType = auth.SchemeBasic
	// AuthNTLM uses NTLM authentication.
	AuthNTLM AuthType = auth.SchemeNTLM
)

// DefaultApplicationName is reported to the CRM on login.
const DefaultApplicationName = "iConnect CRM"

// Config holds configuration for a SugarCRM client.
type Config struct {
	// URL is the SOAP endpoint or WSDL location, e.g.
	// https://crm.example.com/service/v4_1/soap.php?wsdl.
	URL string `env:"SUGARCRM_URL"`

	// Username for the CRM login procedure.
	Username string `env:"SUGARCRM_USERNAME"`

	// Password for the CRM login procedure.
	Password string `env:"SUGARCRM_PASSWORD"`

	// ApplicationName is sent as application_name on login.
	ApplicationName string `env:"SUGARCRM_APPLICATION" envDefault:"iConnect CRM"`

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `env:"SUGARCRM_TIMEOUT" envDefault:"60s"`

	// InsecureSkipVerify skips TLS certificate verification.
	// WARNING: Only use for testing.
	InsecureSkipVerify bool `env:"SUGARCRM_INSECURE"`

	// HTTPAuth selects gateway authentication (none, basic, ntlm).
	HTTPAuth AuthType `env:"SUGARCRM_HTTP_AUTH" envDefault:"none"`

	// HTTPUsername, HTTPPassword and HTTPDomain are the gateway credentials.
	HTTPUsername string `env:"SUGARCRM_HTTP_USERNAME"`
	HTTPPassword string `env:"SUGARCRM_HTTP_PASSWORD"`
	HTTPDomain   string `env:"SUGARCRM_HTTP_DOMAIN"`
}

// DefaultConfig returns a Config with sensible defaults. URL and credentials
// have no defaults.
func DefaultConfig() Config {
	return Config{
		ApplicationName: DefaultApplicationName,
		Timeout:         60 * time.Second,
		HTTPAuth:        AuthNone,
	}
}

// LoadConfig reads a Config from SUGARCRM_* environment variables and
// validates it.
func LoadConfig() (Config, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ConfigFromEnv reads SUGARCRM_* environment variables without validating,
// so callers can layer flags on top.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("error getting env configs: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return errors.New("url is required")
	}
	if c.Username == "" {
		return errors.New("username is required")
	}
	if c.Password == "" {
		return errors.New("password is required")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative (got %s)", c.Timeout)
	}

	switch AuthType(strings.ToLower(string(c.HTTPAuth))) {
	case "", AuthNone:
	case AuthBasic, AuthNTLM:
		creds := c.httpCredentials()
		if err := creds.Validate(); err != nil {
			return fmt.Errorf("http auth %s: %w", c.HTTPAuth, err)
		}
	default:
		return fmt.Errorf("unknown http auth type %q", c.HTTPAuth)
	}

	return nil
}

func (c *Config) httpCredentials() auth.Credentials {
	return auth.Credentials{
		Username: c.HTTPUsername,
		Password: c.HTTPPassword,
		Domain:   c.HTTPDomain,
	}
}
