package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-decks/internal/api/shared"
)

// DefaultUser attaches a fixed user to every request. The server runs for a
// single configured user, ensured at startup.
func DefaultUser(userID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(shared.WithUserID(r.Context(), userID)))
		})
	}
}
