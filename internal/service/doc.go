// Package service contains the application use cases. It coordinates the
// stores defined in internal/store with the pure deck codec and review
// selector, applies ownership checks and draws transaction boundaries for
// operations that touch several tables.
//
// Services depend on store interfaces only, never on a concrete database
// implementation. Expected failures surface as sentinel errors (ErrNotOwned,
// store.ErrDeckNotFound, deckfmt.FormatError, review.ErrNoCandidates);
// anything else is wrapped in DeckServiceError or ReviewServiceError.
package service
