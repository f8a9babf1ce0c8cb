package client

import (
	"time"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
)

// Config holds client settings read from the environment.
// Variables use the SMEPLUG_ prefix, e.g. SMEPLUG_API_KEY.
type Config struct {
	APIKey  string        `envconfig:"API_KEY" required:"true"`
	BaseURL string        `envconfig:"BASE_URL" default:"https://smeplug.ng/api/v1"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"50s"`
	Debug   bool          `envconfig:"DEBUG" default:"false"`
}

// LoadConfig populates Config from environment variables (prefix SMEPLUG_).
func LoadConfig() (Config, error) {
	var c Config
	return c, envconfig.Process("SMEPLUG", &c)
}

// NewFromConfig builds a client from cfg. Explicit opts are applied after
// the ones derived from cfg and win on conflict.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	base := []Option{WithDebugLogging(cfg.Debug)}
	if cfg.BaseURL != "" {
		base = append(base, WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		base = append(base, WithHTTPTimeout(cfg.Timeout))
	}
	return New(cfg.APIKey, append(base, opts...)...)
}

// NewFromEnv is LoadConfig followed by NewFromConfig.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg, opts...)
}

// NewCustomerReference returns a fresh random customer reference. Reusing
// one across retries of the same purchase lets the provider correlate them.
func NewCustomerReference() string {
	return uuid.NewString()
}
