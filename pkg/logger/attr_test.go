package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/questkit/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestUserID(t *testing.T) {
	attr := logger.UserID(42)
	require.Equal(t, "user_id", attr.Key)
	assert.Equal(t, int64(42), attr.Value.Int64())

	assert.True(t, logger.UserID(0).Equal(slog.Attr{}))
}

func TestRequestID(t *testing.T) {
	attr := logger.RequestID("abc")
	require.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "abc", attr.Value.String())

	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
}

func TestDomainAttrs(t *testing.T) {
	assert.Equal(t, "component", logger.Component("engine").Key)
	assert.Equal(t, "op", logger.Operation("login").Key)
	assert.Equal(t, uint64(7), logger.Sequence(7).Value.Uint64())
	assert.Equal(t, "authenticated", logger.Phase("authenticated").Value.String())
	assert.Equal(t, int64(401), logger.StatusCode(401).Value.Int64())
	assert.True(t, logger.StatusCode(0).Equal(slog.Attr{}))
	assert.Equal(t, "token", logger.Key("token").Value.String())
	assert.Equal(t, time.Second, logger.Duration(time.Second).Value.Duration())
}
