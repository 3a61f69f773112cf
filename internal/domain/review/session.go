package review

import (
	"github.com/phrazzld/scry-decks/internal/domain"
)

// Phase is the position of a session in its Unstarted -> Picked -> Revealed
// -> Picked cycle.
type Phase int

// Session phases
const (
	PhaseUnstarted Phase = iota
	PhasePicked
	PhaseRevealed
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhasePicked:
		return "picked"
	case PhaseRevealed:
		return "revealed"
	default:
		return "unstarted"
	}
}

// Session is the caller-owned state of one review session. Methods take the
// session by value and return its successor, so a Session is never partially
// updated and several sessions over one deck do not interfere.
type Session struct {
	Phase   Phase     `json:"phase"`
	Current Selection `json:"current"`
}

// Next picks a new card with the default weight table. It is valid from any
// phase; picking again before revealing simply skips the current card.
func (s Session) Next(
	deck *domain.Deck,
	ratings domain.Ratings,
	settings domain.ReviewSettings,
	rnd RandSource,
) (Session, error) {
	return s.NextWith(defaultSelector, deck, ratings, settings, rnd)
}

// NextWith is Next using sel.
func (s Session) NextWith(
	sel *Selector,
	deck *domain.Deck,
	ratings domain.Ratings,
	settings domain.ReviewSettings,
	rnd RandSource,
) (Session, error) {
	picked, err := sel.Pick(deck, ratings, settings, rnd)
	if err != nil {
		return s, err
	}
	return Session{Phase: PhasePicked, Current: picked}, nil
}

// Reveal returns the answer of the current card and the revealed session.
// Revealing twice returns the same answer.
func (s Session) Reveal(deck *domain.Deck) (Session, string, error) {
	if s.Phase == PhaseUnstarted {
		return s, "", ErrNotPicked
	}
	back, err := Reveal(deck, s.Current)
	if err != nil {
		return s, "", err
	}
	return Session{Phase: PhaseRevealed, Current: s.Current}, back, nil
}

// Rate rates the current card and returns the updated ratings snapshot to be
// passed into the next pick.
func (s Session) Rate(deck *domain.Deck, ratings domain.Ratings, d domain.Difficulty) (domain.Ratings, error) {
	if s.Phase == PhaseUnstarted {
		return nil, ErrNotPicked
	}
	return Rate(deck, ratings, s.Current.RowIndex, d)
}
