package gateway

import (
	"errors"
	"net/http"
)

var (
	// ErrNetwork marks transport failures where no response was received.
	ErrNetwork = errors.New("gateway: network failure")

	// ErrInvalidResponse marks responses whose body is not a valid envelope.
	ErrInvalidResponse = errors.New("gateway: invalid response")

	// ErrInvalidBaseURL is returned by New for unusable base URLs.
	ErrInvalidBaseURL = errors.New("gateway: invalid base URL")
)

// Error is returned by every Client method on failure.
type Error struct {
	// Op is the operation name: login, register, get_profile, ...
	Op string
	// StatusCode is the HTTP status, 0 when no response was received.
	StatusCode int
	// Message is a user-facing description.
	Message string
	// RequestID is the X-Request-ID sent with the request.
	RequestID string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Unauthorized reports whether the server rejected the credentials or token.
func (e *Error) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// Network reports whether the request failed before a response arrived.
func (e *Error) Network() bool {
	return errors.Is(e.Err, ErrNetwork)
}

// AsError extracts a *Error from err.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	e, ok := AsError(err)
	return ok && e.Unauthorized()
}

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// Message returns a user-facing message for err. Errors that did not come
// from the gateway yield their Error() text.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := AsError(err); ok {
		return e.Message
	}
	return err.Error()
}
