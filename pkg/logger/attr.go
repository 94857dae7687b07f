package logger

import (
	"log/slog"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the user identifier under the key "user_id".
// Zero ids are dropped.
func UserID(id int64) slog.Attr {
	if id == 0 {
		return slog.Attr{}
	}
	return slog.Int64("user_id", id)
}

// RequestID records the request identifier under the key "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Operation records the operation name (login, update_profile, ...) under the key "op".
func Operation(name string) slog.Attr {
	return slog.String("op", name)
}

// Sequence records the call sequence number under the key "seq".
func Sequence(seq uint64) slog.Attr {
	return slog.Uint64("seq", seq)
}

// Phase records a session phase under the key "phase".
func Phase(name string) slog.Attr {
	return slog.String("phase", name)
}

// StatusCode records an HTTP status code under the key "status".
func StatusCode(code int) slog.Attr {
	if code == 0 {
		return slog.Attr{}
	}
	return slog.Int("status", code)
}

// Key records a storage key under the key "key".
func Key(key string) slog.Attr {
	return slog.String("key", key)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
