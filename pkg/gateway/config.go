package gateway

import "time"

// Config holds API client settings.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.example.com/api".
	BaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8080/api"`

	// Timeout bounds a single request including reading the body.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"10s"`

	UserAgent string `env:"API_USER_AGENT" envDefault:"questkit/1.0"`
}

// DefaultConfig returns default client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "http://localhost:8080/api",
		Timeout:   10 * time.Second,
		UserAgent: "questkit/1.0",
	}
}

// NewFromConfig creates a Client from cfg; opts are applied after the config values.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	configOpts := []Option{
		WithTimeout(cfg.Timeout),
		WithUserAgent(cfg.UserAgent),
	}
	return New(cfg.BaseURL, append(configOpts, opts...)...)
}
