package session

// Backend names accepted by Config.Backend.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config holds session persistence settings.
type Config struct {
	// Backend selects the Storage implementation: memory, file or redis.
	Backend string `env:"SESSION_BACKEND" envDefault:"file"`

	// FilePath is the JSON document used by the file backend.
	FilePath string `env:"SESSION_FILE" envDefault:".questkit/session.json"`

	// KeyPrefix is prepended to every storage key (useful on shared Redis).
	KeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:""`

	TokenKey string `env:"SESSION_TOKEN_KEY" envDefault:"token"`
	UserKey  string `env:"SESSION_USER_KEY" envDefault:"user"`
}

// DefaultConfig returns default session configuration.
func DefaultConfig() Config {
	return Config{
		Backend:  BackendFile,
		FilePath: ".questkit/session.json",
		TokenKey: "token",
		UserKey:  "user",
	}
}

// NewFromConfig builds a Store over storage using the key layout from cfg.
func NewFromConfig(storage Storage, cfg Config, opts ...Option) *Store {
	configOpts := []Option{
		WithKeyPrefix(cfg.KeyPrefix),
		WithKeys(cfg.TokenKey, cfg.UserKey),
	}
	return NewStore(storage, append(configOpts, opts...)...)
}
