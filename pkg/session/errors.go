package session

import "errors"

var (
	// ErrCorruptRecord indicates a stored value could not be decoded.
	// It is logged, never returned from Store reads.
	ErrCorruptRecord = errors.New("session.corrupt_record")

	// ErrNoStorage indicates a Store was built without a Storage.
	ErrNoStorage = errors.New("session.no_storage")

	// ErrEmptyToken indicates an attempt to save a session without a token.
	ErrEmptyToken = errors.New("session.empty_token")

	// ErrNilUser indicates an attempt to save a session without a user.
	ErrNilUser = errors.New("session.nil_user")

	// ErrUnknownBackend indicates an unsupported SESSION_BACKEND value.
	ErrUnknownBackend = errors.New("session.unknown_backend")
)
