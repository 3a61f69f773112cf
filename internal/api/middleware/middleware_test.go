package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-decks/internal/api/middleware"
	"github.com/phrazzld/scry-decks/internal/api/shared"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
)

func TestTraceMiddleware(t *testing.T) {
	t.Parallel()

	base, buf := logger.GetTestLogger(t)
	var seenTrace string
	handler := middleware.NewTraceMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTrace = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/decks", nil))

	require.Len(t, seenTrace, 32)
	assert.Equal(t, http.StatusNoContent, w.Code)
	logger.AssertLogContains(t, buf, "inside handler")
	logger.AssertLogField(t, buf, "trace_id", seenTrace)
}

func TestDefaultUser(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	var got uuid.UUID
	var ok bool
	handler := middleware.DefaultUser(userID)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = shared.UserIDFromContext(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.True(t, ok)
	assert.Equal(t, userID, got)
}
