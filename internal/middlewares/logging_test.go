package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/blogi/blogi-api/internal/middlewares"
)

func TestLoggingMiddleware(t *testing.T) {
	log := zap.NewNop().Sugar()

	t.Run("stamps a request id", func(t *testing.T) {
		var ctxReqID string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctxReqID = middlewares.GetRequestIDFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		handler := middlewares.LoggingMiddleware(log)(next)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/blogs/", nil))

		headerReqID := rec.Header().Get("X-Request-ID")
		assert.NotEmpty(t, headerReqID)
		assert.Equal(t, headerReqID, ctxReqID)

		_, err := uuid.Parse(headerReqID)
		assert.NoError(t, err)
	})

	t.Run("each request gets a fresh id", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
		handler := middlewares.LoggingMiddleware(log)(next)

		first := httptest.NewRecorder()
		handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))

		second := httptest.NewRecorder()
		handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEqual(t, first.Header().Get("X-Request-ID"), second.Header().Get("X-Request-ID"))
	})

	t.Run("preserves the handler's status and body", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
			w.Write([]byte("short and stout"))
		})

		handler := middlewares.LoggingMiddleware(log)(next)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "short and stout", rec.Body.String())
	})
}

func TestGetRequestIDFromContext_Absent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, middlewares.GetRequestIDFromContext(req.Context()))
}
