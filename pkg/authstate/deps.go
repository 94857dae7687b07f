package authstate

import (
	"context"

	"github.com/dmitrymomot/questkit/pkg/account"
	"github.com/dmitrymomot/questkit/pkg/gateway"
	"github.com/dmitrymomot/questkit/pkg/session"
)

// Gateway is the subset of the API client the engine needs.
// *gateway.Client satisfies it.
type Gateway interface {
	Login(ctx context.Context, creds account.LoginCredentials) (gateway.AuthResult, error)
	Register(ctx context.Context, creds account.RegisterCredentials) (gateway.AuthResult, error)
	GetProfile(ctx context.Context) (account.User, error)
	UpdateProfile(ctx context.Context, upd account.ProfileUpdate) (account.User, error)
	DeleteAccount(ctx context.Context) error
}

// SessionStore persists the session. *session.Store satisfies it.
type SessionStore interface {
	Load(ctx context.Context) session.Snapshot
	Save(ctx context.Context, token string, user *account.User) error
	SaveUser(ctx context.Context, user *account.User) error
	Clear(ctx context.Context) error
}

var (
	_ Gateway      = (*gateway.Client)(nil)
	_ SessionStore = (*session.Store)(nil)
)
