package shared

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-decks/internal/platform/logger"
)

// ContextKey is the type of request context keys set by this package.
type ContextKey string

// UserIDContextKey is the context key for the acting user's ID.
const UserIDContextKey ContextKey = "userID"

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, UserIDContextKey, userID)
}

// UserIDFromContext returns the acting user's ID. The boolean is false when
// no user, or the nil UUID, is set.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// SetTraceID adds a fresh trace ID to the context and returns it.
// Trace IDs are random UUIDs without dashes: 32 hex characters.
func SetTraceID(ctx context.Context) (context.Context, string) {
	traceID := strings.ReplaceAll(uuid.NewString(), "-", "")
	return logger.WithTraceID(ctx, traceID), traceID
}

// GetTraceID retrieves the trace ID from the context, or "".
func GetTraceID(ctx context.Context) string {
	return logger.TraceIDFromContext(ctx)
}
