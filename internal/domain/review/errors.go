package review

import "errors"

// Common errors
var (
	// ErrInvalidDeck is returned when a deck is nil or has fewer than two headers.
	ErrInvalidDeck = errors.New("deck must have at least two headers")

	// ErrUnknownHeader is returned when a selection names a header the deck does not have.
	ErrUnknownHeader = errors.New("selection header not in deck")

	// ErrNotPicked is returned when a session is revealed or rated before a card was picked.
	ErrNotPicked = errors.New("no card has been picked")

	// ErrInvalidWeight is returned when a weight table is missing an entry or holds a non-positive weight.
	ErrInvalidWeight = errors.New("difficulty weights must be positive")
)

// NoCandidatesError reports that no row is eligible under the current
// settings. Callers relax SkipEasy or show a "nothing to review" state; it is
// never retried internally.
type NoCandidatesError struct {
	SkipEasy bool
	Rows     int
}

// Error implements the error interface.
func (e *NoCandidatesError) Error() string {
	return "no cards available with current settings"
}

// Is matches any NoCandidatesError so callers can use errors.Is(err, ErrNoCandidates).
func (e *NoCandidatesError) Is(target error) bool {
	_, ok := target.(*NoCandidatesError)
	return ok
}

// ErrNoCandidates is the sentinel for NoCandidatesError.
var ErrNoCandidates = &NoCandidatesError{}
