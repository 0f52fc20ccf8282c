package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf, Component: ComponentAPI})

	l.Info("fetched", FieldCount, 3)
	assert.Contains(t, buf.String(), "component=api")
	assert.Contains(t, buf.String(), "count=3")

	buf.Reset()
	l.WithComponent(ComponentCache).Warn("evicted")
	assert.Contains(t, buf.String(), "component=cache")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("whatever"))
}

func TestFields(t *testing.T) {
	f := NewFields().WithOperation(OpLogin).WithError(errors.New("boom")).WithError(nil)
	assert.Equal(t, OpLogin, f[FieldOperation])
	assert.Equal(t, "boom", f[FieldError])
	assert.Len(t, f.ToSlice(), 4)
}

func TestFromContextFallback(t *testing.T) {
	l := FromContext(context.Background())
	assert.Equal(t, "unknown", l.Component())
}

func TestMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Output: &buf})

	var seen *Logger
	h := Middleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("generates request id", func(t *testing.T) {
		buf.Reset()
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
		assert.Equal(t, ComponentHTTP, seen.Component())
		assert.Contains(t, buf.String(), "status_code=418")
		assert.Contains(t, buf.String(), "level=WARN")
	})

	t.Run("keeps incoming request id", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
		assert.Contains(t, buf.String(), "request_id=abc")
	})
}
