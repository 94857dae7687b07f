package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage is a key-value wrapper over go-redis that satisfies session.BatchStorage.
type Storage struct {
	db  redis.UniversalClient
	ttl time.Duration
}

// NewStorage wraps redisClient. Keys never expire.
func NewStorage(redisClient redis.UniversalClient) *Storage {
	return &Storage{db: redisClient}
}

// NewStorageWithConfig wraps redisClient and applies cfg.SessionTTL to every write.
func NewStorageWithConfig(redisClient redis.UniversalClient, cfg Config) *Storage {
	return &Storage{db: redisClient, ttl: cfg.SessionTTL}
}

// Get returns nil for empty keys and missing values (redis.Nil becomes nil).
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	val, err := s.db.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrCommandFailed, err)
	}
	return val, nil
}

// Set stores value under key with the configured TTL.
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := s.db.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return errors.Join(ErrCommandFailed, err)
	}
	return nil
}

// SetMany writes all values in one MULTI/EXEC transaction.
func (s *Storage) SetMany(ctx context.Context, values map[string][]byte) error {
	for key := range values {
		if key == "" {
			return ErrEmptyKey
		}
	}
	_, err := s.db.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, value := range values {
			pipe.Set(ctx, key, value, s.ttl)
		}
		return nil
	})
	if err != nil {
		return errors.Join(ErrCommandFailed, err)
	}
	return nil
}

// Delete removes a key. Empty keys are ignored.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := s.db.Del(ctx, key).Err(); err != nil {
		return errors.Join(ErrCommandFailed, err)
	}
	return nil
}

// Close terminates the Redis connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

// Conn returns the underlying Redis client for advanced operations.
func (s *Storage) Conn() redis.UniversalClient {
	return s.db
}
