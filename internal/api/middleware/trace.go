package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-decks/internal/api/shared"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
)

// NewTraceMiddleware returns middleware that gives every request a trace ID
// and a request-scoped logger carrying it. Handlers and services pick the
// logger up with logger.FromContextOrDefault.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, traceID := shared.SetTraceID(r.Context())
			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
