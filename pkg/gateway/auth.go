package gateway

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrymomot/questkit/pkg/account"
)

// AuthResult is the payload of a successful login or registration.
type AuthResult struct {
	Token string       `json:"token"`
	User  account.User `json:"user"`
}

// Login exchanges credentials for a token and the account record.
func (c *Client) Login(ctx context.Context, creds account.LoginCredentials) (AuthResult, error) {
	var res AuthResult
	err := c.do(ctx, request{op: OpLogin, method: http.MethodPost, path: "/auth/login", body: creds}, &res)
	if err != nil {
		return AuthResult{}, err
	}
	return res, c.checkAuthResult(OpLogin, res)
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, creds account.RegisterCredentials) (AuthResult, error) {
	var res AuthResult
	err := c.do(ctx, request{op: OpRegister, method: http.MethodPost, path: "/auth/register", body: creds}, &res)
	if err != nil {
		return AuthResult{}, err
	}
	return res, c.checkAuthResult(OpRegister, res)
}

// checkAuthResult rejects a success envelope that carries no token.
func (c *Client) checkAuthResult(op string, res AuthResult) error {
	if res.Token == "" {
		return &Error{
			Op:         op,
			StatusCode: http.StatusOK,
			Message:    fallbackMessage(op),
			Err:        errors.Join(ErrInvalidResponse, errors.New("missing token")),
		}
	}
	return nil
}

// GetProfile returns the full account record for the current token.
func (c *Client) GetProfile(ctx context.Context) (account.User, error) {
	var u account.User
	err := c.do(ctx, request{op: OpGetProfile, method: http.MethodGet, path: "/user/profile", auth: true}, &u)
	return u, err
}

// UpdateProfile applies a partial update and returns the updated record.
func (c *Client) UpdateProfile(ctx context.Context, upd account.ProfileUpdate) (account.User, error) {
	var u account.User
	err := c.do(ctx, request{op: OpUpdateProfile, method: http.MethodPut, path: "/user/profile", body: upd, auth: true}, &u)
	return u, err
}

// DeleteAccount permanently removes the current account.
func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.do(ctx, request{op: OpDeleteAccount, method: http.MethodDelete, path: "/user/account", auth: true}, nil)
}
