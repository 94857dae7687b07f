package session_test

import (
	"context"
	"errors"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/questkit/pkg/session"
)

// MockStorage is a mock implementation of session.Storage.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStorage) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// failingStorage wraps a MemoryStorage and fails Set for one key.
type failingStorage struct {
	*session.MemoryStorage
	failKey string
	err     error
}

func (f *failingStorage) Set(ctx context.Context, key string, value []byte) error {
	if key == f.failKey {
		return f.err
	}
	return f.MemoryStorage.Set(ctx, key, value)
}

var errSingleKeyWrite = errors.New("single-key write not expected")

// batchOnlyStorage wraps a FileStorage and rejects single-key writes, so a
// session save must go through SetMany.
type batchOnlyStorage struct {
	*session.FileStorage
}

func (b *batchOnlyStorage) Set(context.Context, string, []byte) error {
	return errSingleKeyWrite
}
