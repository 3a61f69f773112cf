package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/scry-decks/internal/api/shared"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/domain/deckfmt"
	"github.com/phrazzld/scry-decks/internal/domain/review"
	"github.com/phrazzld/scry-decks/internal/service"
	"github.com/phrazzld/scry-decks/internal/store"
)

func TestErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not owned", service.ErrDeckNotOwned, http.StatusForbidden, "You do not own this deck"},
		{"deck not found", store.NewStoreError("deck", "get", "no rows", store.ErrDeckNotFound),
			http.StatusNotFound, "Deck not found"},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"no candidates", &review.NoCandidatesError{SkipEasy: true, Rows: 3},
			http.StatusConflict, NoCandidatesMessage},
		{"duplicate", fmt.Errorf("insert: %w", store.ErrDuplicate), http.StatusConflict, "Resource already exists"},
		{"missing owner", store.ErrDeckOwnerMissing, http.StatusBadRequest, "Invalid entity data"},
		{"format", fmt.Errorf("decode: %w", deckfmt.ErrNoConsistentDelimiter),
			http.StatusBadRequest, "Invalid deck format: no consistent delimiter"},
		{"field", domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID),
			http.StatusBadRequest, "Invalid id: has invalid format"},
		{"wrapped domain validation", fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrDeckNameEmpty),
			http.StatusBadRequest, "Invalid deck: deck name cannot be empty"},
		{"row out of range", domain.ErrRowOutOfRange, http.StatusBadRequest, "Row index out of range"},
		{"difficulty", domain.ErrInvalidDifficulty, http.StatusBadRequest, "Invalid difficulty"},
		{"direction", domain.ErrInvalidDirection, http.StatusBadRequest, "Invalid review direction"},
		{"unknown header", review.ErrUnknownHeader, http.StatusBadRequest,
			"Front header is not a side of this deck"},
		{"empty body", shared.ErrEmptyBody, http.StatusBadRequest, "Request body is required"},
		{"internal", errors.New("connection reset"), http.StatusInternalServerError,
			"An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, MapErrorToStatusCode(tc.err))
			assert.Equal(t, tc.message, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestGetSafeErrorMessage_Nil(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}

func TestSanitizeValidationError_NotValidatorError(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("plain")))
}
