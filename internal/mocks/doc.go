// Package mocks provides shared test doubles for the store and service
// interfaces.
//
// Store mocks use function fields: a test sets only the functions it cares
// about and everything else returns the zero value and DefaultError. Calls
// are recorded so tests can assert on them.
//
//	decks := &mocks.MockDeckStore{
//	    GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
//	        return deck, nil
//	    },
//	}
//
// Service mocks embed testify's mock.Mock and are driven with On/Return.
package mocks
