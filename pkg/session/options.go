package session

import "log/slog"

// Option is a functional option for configuring the Store.
type Option func(*Store)

// WithLogger sets the logger used to report swallowed read failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithKeyPrefix prepends prefix to the token and user keys.
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithKeys overrides the token and user key names. Empty names are ignored.
func WithKeys(tokenKey, userKey string) Option {
	return func(s *Store) {
		if tokenKey != "" {
			s.tokenKey = tokenKey
		}
		if userKey != "" {
			s.userKey = userKey
		}
	}
}
