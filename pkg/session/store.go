package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/questkit/pkg/account"
	"github.com/dmitrymomot/questkit/pkg/logger"
)

// Snapshot is the persisted session as read from storage.
// Either field may be empty when the store is half-written.
type Snapshot struct {
	Token string
	User  *account.User
}

// Complete reports whether both token and user are present.
func (s Snapshot) Complete() bool {
	return s.Token != "" && s.User != nil
}

// Store reads and writes the session through a Storage.
type Store struct {
	storage  Storage
	logger   *slog.Logger
	prefix   string
	tokenKey string
	userKey  string
}

// NewStore creates a Store on top of storage.
// Panics if storage is nil: a store without a medium cannot do anything useful.
func NewStore(storage Storage, opts ...Option) *Store {
	if storage == nil {
		panic(ErrNoStorage)
	}
	s := &Store{
		storage:  storage,
		logger:   logger.Discard(),
		tokenKey: "token",
		userKey:  "user",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("session.store"))
	return s
}

// TokenKey returns the fully qualified token key.
func (s *Store) TokenKey() string { return s.prefix + s.tokenKey }

// UserKey returns the fully qualified user key.
func (s *Store) UserKey() string { return s.prefix + s.userKey }

// Token returns the stored token, if any.
func (s *Store) Token(ctx context.Context) (string, bool) {
	raw := s.get(ctx, s.TokenKey())
	if len(raw) == 0 {
		return "", false
	}
	return string(raw), true
}

// User returns the stored user record, if any. Corrupt records read as absent.
func (s *Store) User(ctx context.Context) (*account.User, bool) {
	raw := s.get(ctx, s.UserKey())
	if len(raw) == 0 {
		return nil, false
	}

	var u account.User
	if err := json.Unmarshal(raw, &u); err != nil {
		s.logger.WarnContext(ctx, "discarding unreadable user record",
			logger.Key(s.UserKey()),
			logger.Error(errors.Join(ErrCorruptRecord, err)),
		)
		return nil, false
	}
	return &u, true
}

// Load reads token and user together.
func (s *Store) Load(ctx context.Context) Snapshot {
	token, _ := s.Token(ctx)
	user, _ := s.User(ctx)
	return Snapshot{Token: token, User: user}
}

// Save persists a full session. A BatchStorage receives token and user in one
// atomic write. Otherwise the user is written first so that a stored token
// always has its user next to it, and on failure the previous raw values are
// restored.
func (s *Store) Save(ctx context.Context, token string, user *account.User) error {
	if token == "" {
		return ErrEmptyToken
	}
	if user == nil {
		return ErrNilUser
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	if bs, ok := s.storage.(BatchStorage); ok {
		err := bs.SetMany(ctx, map[string][]byte{
			s.UserKey():  data,
			s.TokenKey(): []byte(token),
		})
		if err != nil {
			return fmt.Errorf("store session: %w", err)
		}
		return nil
	}

	prevUser, _ := s.storage.Get(ctx, s.UserKey())
	prevToken, _ := s.storage.Get(ctx, s.TokenKey())

	if err := s.storage.Set(ctx, s.UserKey(), data); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	if err := s.storage.Set(ctx, s.TokenKey(), []byte(token)); err != nil {
		s.restore(ctx, s.UserKey(), prevUser)
		s.restore(ctx, s.TokenKey(), prevToken)
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// SaveUser replaces the stored user record and leaves the token alone.
func (s *Store) SaveUser(ctx context.Context, user *account.User) error {
	if user == nil {
		return ErrNilUser
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.storage.Set(ctx, s.UserKey(), data); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	return nil
}

// Clear removes token and user. Both deletes are attempted; the errors are joined.
func (s *Store) Clear(ctx context.Context) error {
	return errors.Join(
		s.storage.Delete(ctx, s.TokenKey()),
		s.storage.Delete(ctx, s.UserKey()),
	)
}

func (s *Store) get(ctx context.Context, key string) []byte {
	raw, err := s.storage.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "session storage read failed, treating as absent",
			logger.Key(key),
			logger.Error(err),
		)
		return nil
	}
	return raw
}

func (s *Store) restore(ctx context.Context, key string, prev []byte) {
	var err error
	if prev == nil {
		err = s.storage.Delete(ctx, key)
	} else {
		err = s.storage.Set(ctx, key, prev)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to restore session key after write error",
			logger.Key(key),
			logger.Error(err),
		)
	}
}
