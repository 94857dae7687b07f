package session

import "context"

// Storage is a durable key-value medium.
type Storage interface {
	// Get returns the value for key, or nil with a nil error when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// BatchStorage is a Storage that can write several keys in one atomic step.
// Store.Save uses it so that a crash never leaves a token paired with another
// session's user.
type BatchStorage interface {
	Storage

	// SetMany stores every key in values, or none of them.
	SetMany(ctx context.Context, values map[string][]byte) error
}
