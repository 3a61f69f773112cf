package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/phrazzld/scry-decks/internal/api/shared"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
)

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// getPathRow extracts a non-negative row index path parameter.
func getPathRow(r *http.Request, paramName string) (int, error) {
	row, err := strconv.Atoi(chi.URLParam(r, paramName))
	if err != nil || row < 0 {
		return 0, domain.NewValidationError(paramName, "must be a non-negative integer", domain.ErrValidation)
	}
	return row, nil
}

// handleUserIDAndPathUUID extracts the acting user from the context and a UUID
// from the path. It writes the error response itself and reports false when
// either is missing.
func handleUserIDAndPathUUID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (uuid.UUID, uuid.UUID, bool) {
	if log == nil {
		log = logger.FromContext(r.Context())
	}

	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user ID not found in request context")
		shared.RespondWithError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
		return uuid.Nil, uuid.Nil, false
	}

	pathID, err := getPathUUID(r, paramName)
	if err != nil {
		log.Debug("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, pathID, true
}
