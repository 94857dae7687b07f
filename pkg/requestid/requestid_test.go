package requestid_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/questkit/pkg/logger"
	"github.com/dmitrymomot/questkit/pkg/requestid"
)

func TestEnsure(t *testing.T) {
	t.Parallel()

	t.Run("reuses id from context", func(t *testing.T) {
		t.Parallel()
		ctx := requestid.WithContext(context.Background(), "cli-run-1")
		got, id := requestid.Ensure(ctx)
		assert.Equal(t, "cli-run-1", id)
		assert.Equal(t, ctx, got)
	})

	t.Run("generates id when missing", func(t *testing.T) {
		t.Parallel()
		ctx, id := requestid.Ensure(context.Background())
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, requestid.FromContext(ctx))
	})

	t.Run("replaces invalid id", func(t *testing.T) {
		t.Parallel()
		ctx := requestid.WithContext(context.Background(), "bad id/with spaces")
		_, id := requestid.Ensure(ctx)
		assert.NotEqual(t, "bad id/with spaces", id)
		assert.True(t, requestid.Valid(id))
	})
}

func TestValid(t *testing.T) {
	t.Parallel()

	assert.True(t, requestid.Valid("abc_DEF-123"))
	for _, id := range []string{"", "a b", "a/b", "a@b", strings.Repeat("x", 129)} {
		assert.False(t, requestid.Valid(id), "id %q", id)
	}
}

func TestFromContext_Nil(t *testing.T) {
	t.Parallel()
	//nolint:staticcheck // nil context is handled explicitly
	assert.Empty(t, requestid.FromContext(nil))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var seen string
	handler := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestid.Header, "trace-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "trace-42", seen)
	assert.Equal(t, "trace-42", rec.Header().Get(requestid.Header))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestid.Header, "not valid!")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.NotEqual(t, "not valid!", seen)
	assert.Equal(t, seen, rec.Header().Get(requestid.Header))
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithJSONFormatter(),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)

	log.InfoContext(requestid.WithContext(context.Background(), "req-7"), "hello")
	assert.Contains(t, buf.String(), `"request_id":"req-7"`)

	buf.Reset()
	log.Log(context.Background(), slog.LevelInfo, "no id")
	assert.NotContains(t, buf.String(), "request_id")
}
