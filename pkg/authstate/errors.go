package authstate

import "errors"

var (
	ErrSuperseded       = errors.New("authstate.superseded")
	ErrNotAuthenticated = errors.New("authstate.not_authenticated")
	ErrSessionExpired   = errors.New("authstate.session_expired")
	ErrPersistSession   = errors.New("authstate.persist_failed")
	ErrNoGateway        = errors.New("authstate.no_gateway")
	ErrNoStore          = errors.New("authstate.no_store")
)

// User-facing messages recorded in State.Error.
const (
	MessageSessionExpired = "Your session has expired. Please log in again."
	MessagePersistFailed  = "Failed to save session. Please try again."
)
