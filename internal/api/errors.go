package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/scry-decks/internal/api/shared"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/domain/deckfmt"
	"github.com/phrazzld/scry-decks/internal/domain/review"
	"github.com/phrazzld/scry-decks/internal/service"
	"github.com/phrazzld/scry-decks/internal/store"
)

// NoCandidatesMessage is the response text when a review has nothing to show.
const NoCandidatesMessage = "No cards available with current settings"

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, review.ErrNoCandidates),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case deckfmt.IsFormatError(err),
		errors.As(err, &validationErrs),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidDifficulty),
		errors.Is(err, domain.ErrInvalidDirection),
		errors.Is(err, domain.ErrRowOutOfRange),
		errors.Is(err, review.ErrUnknownHeader),
		errors.Is(err, review.ErrInvalidDeck),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err. Messages come
// from fixed text, never from the raw error of a lower layer.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var (
		formatErr      *deckfmt.FormatError
		fieldErr       *domain.ValidationError
		validationErrs validator.ValidationErrors
	)

	switch {
	case errors.Is(err, service.ErrNotOwned):
		return "You do not own this deck"

	case errors.Is(err, store.ErrDeckNotFound):
		return "Deck not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, review.ErrNoCandidates):
		return NoCandidatesMessage

	case errors.As(err, &formatErr):
		return "Invalid deck format: " + formatErr.Reason

	case errors.As(err, &validationErrs):
		return SanitizeValidationError(err)

	case errors.As(err, &fieldErr):
		return fmt.Sprintf("Invalid %s: %s", fieldErr.Field, fieldErr.Message)

	case errors.Is(err, domain.ErrRowOutOfRange):
		return "Row index out of range"

	case errors.Is(err, domain.ErrInvalidDifficulty):
		return "Invalid difficulty"

	case errors.Is(err, domain.ErrInvalidDirection):
		return "Invalid review direction"

	case errors.Is(err, review.ErrUnknownHeader):
		return "Front header is not a side of this deck"

	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"

	case errors.Is(err, domain.ErrValidation):
		// Domain validation messages are fixed strings.
		return "Invalid deck: " + strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator errors into a message naming the
// first failing field and rule.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}
	fe := validationErrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required", "required_without":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gte":
		return "too small"
	case "lte":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the error response for err. fallback replaces the
// generic message for internal errors when it is not empty.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
