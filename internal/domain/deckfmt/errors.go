package deckfmt

import "errors"

// Reasons reported by FormatError.
const (
	ReasonInsufficientLines     = "insufficient lines"
	ReasonNoConsistentDelimiter = "no consistent delimiter"
	ReasonAmbiguousDelimiter    = "ambiguous delimiter"
	ReasonInvalidHeader         = "invalid header"
)

// FormatError reports deck text that cannot be decoded. It is always
// recoverable: the caller should ask for corrected text.
type FormatError struct {
	Reason string
	// Candidates holds the competing delimiters, in rune order, when Reason
	// is ReasonAmbiguousDelimiter.
	Candidates []rune
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return "invalid deck format: " + e.Reason
}

// Is lets errors.Is match on reason. A FormatError with an empty Reason
// matches every FormatError.
func (e *FormatError) Is(target error) bool {
	t, ok := target.(*FormatError)
	if !ok {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

// Sentinel values for use with errors.Is.
var (
	ErrFormat                = &FormatError{}
	ErrInsufficientLines     = &FormatError{Reason: ReasonInsufficientLines}
	ErrNoConsistentDelimiter = &FormatError{Reason: ReasonNoConsistentDelimiter}
	ErrAmbiguousDelimiter    = &FormatError{Reason: ReasonAmbiguousDelimiter}
	ErrInvalidHeader         = &FormatError{Reason: ReasonInvalidHeader}
)

func formatError(reason string) error {
	return &FormatError{Reason: reason}
}

// IsFormatError reports whether err is, or wraps, a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
