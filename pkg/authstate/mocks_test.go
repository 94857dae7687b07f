package authstate_test

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/questkit/pkg/account"
	"github.com/dmitrymomot/questkit/pkg/gateway"
	"github.com/dmitrymomot/questkit/pkg/session"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Login(ctx context.Context, creds account.LoginCredentials) (gateway.AuthResult, error) {
	args := m.Called(ctx, creds)
	return args.Get(0).(gateway.AuthResult), args.Error(1)
}

func (m *MockGateway) Register(ctx context.Context, creds account.RegisterCredentials) (gateway.AuthResult, error) {
	args := m.Called(ctx, creds)
	return args.Get(0).(gateway.AuthResult), args.Error(1)
}

func (m *MockGateway) GetProfile(ctx context.Context) (account.User, error) {
	args := m.Called(ctx)
	return args.Get(0).(account.User), args.Error(1)
}

func (m *MockGateway) UpdateProfile(ctx context.Context, upd account.ProfileUpdate) (account.User, error) {
	args := m.Called(ctx, upd)
	return args.Get(0).(account.User), args.Error(1)
}

func (m *MockGateway) DeleteAccount(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var errDiskFull = errors.New("disk full")

// flakyStorage wraps MemoryStorage and fails writes while failSet is true.
type flakyStorage struct {
	*session.MemoryStorage
	failSet atomic.Bool
}

func newFlakyStorage() *flakyStorage {
	return &flakyStorage{MemoryStorage: session.NewMemoryStorage()}
}

func (f *flakyStorage) Set(ctx context.Context, key string, value []byte) error {
	if f.failSet.Load() {
		return errDiskFull
	}
	return f.MemoryStorage.Set(ctx, key, value)
}
