package review

import (
	"github.com/phrazzld/scry-decks/internal/domain"
)

// Side identifies one of the two presentable columns of a deck.
type Side int

// The two sides of a card: Headers[0] and Headers[1].
const (
	SideLeft  Side = 0
	SideRight Side = 1
)

// Selection is the outcome of a pick: which row to show and which of its two
// presentable headers is the front. It is replaced wholesale on every pick.
type Selection struct {
	RowIndex    int    `json:"row_index"`
	Side        Side   `json:"side"`
	FrontHeader string `json:"front_header"`
	BackHeader  string `json:"back_header"`
}

// Selector picks rows using a fixed weight table. A Selector is immutable and
// safe for concurrent use; all randomness comes from the RandSource passed to Pick.
type Selector struct {
	weights Weights
}

// NewSelector creates a Selector with the default weight table.
func NewSelector() *Selector {
	return &Selector{weights: DefaultWeights()}
}

// NewSelectorWithWeights creates a Selector with a custom weight table.
func NewSelectorWithWeights(w Weights) (*Selector, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	copied := make(Weights, len(w))
	for k, v := range w {
		copied[k] = v
	}
	return &Selector{weights: copied}, nil
}

var defaultSelector = NewSelector()

// Pick chooses the next card with the default weight table.
func Pick(
	deck *domain.Deck,
	ratings domain.Ratings,
	settings domain.ReviewSettings,
	rnd RandSource,
) (Selection, error) {
	return defaultSelector.Pick(deck, ratings, settings, rnd)
}

// Pick chooses the next card.
//
// Candidates are all rows, or the rows not rated easy when settings.SkipEasy
// is set. The total weight is recomputed from ratings on every call, so a
// rating applied with Rate takes effect on the very next pick. One draw from
// rnd, scaled to the total weight, is walked down the candidates in deck
// order; the first candidate that takes the remainder to zero or below wins.
// For a fixed draw the result is therefore reproducible.
func (s *Selector) Pick(
	deck *domain.Deck,
	ratings domain.Ratings,
	settings domain.ReviewSettings,
	rnd RandSource,
) (Selection, error) {
	if deck == nil || len(deck.Headers) < domain.MinHeaders {
		return Selection{}, ErrInvalidDeck
	}
	if err := settings.Validate(); err != nil {
		return Selection{}, err
	}

	candidates := make([]int, 0, len(deck.Rows))
	total := 0
	for i := range deck.Rows {
		d := ratings.Of(i)
		if settings.SkipEasy && d == domain.DifficultyEasy {
			continue
		}
		candidates = append(candidates, i)
		total += s.weights.Of(d)
	}

	if len(candidates) == 0 {
		return Selection{}, &NoCandidatesError{SkipEasy: settings.SkipEasy, Rows: len(deck.Rows)}
	}

	r := rnd.Float64() * float64(total)
	chosen := candidates[len(candidates)-1]
	for _, i := range candidates {
		r -= float64(s.weights.Of(ratings.Of(i)))
		if r <= 0 {
			chosen = i
			break
		}
	}

	side := chooseSide(deck.Rows[chosen], deck.Headers, settings.Direction, rnd)
	return newSelection(deck.Headers, chosen, side), nil
}

// chooseSide never puts an empty side in front of a filled one; otherwise it
// follows the direction, drawing from rnd only for DirectionBoth.
func chooseSide(row domain.RowRecord, headers []string, dir domain.Direction, rnd RandSource) Side {
	left := row.Get(headers[0])
	right := row.Get(headers[1])

	switch {
	case left == "" && right != "":
		return SideRight
	case right == "" && left != "":
		return SideLeft
	}

	switch dir {
	case domain.DirectionLeftToRight:
		return SideLeft
	case domain.DirectionRightToLeft:
		return SideRight
	default:
		if rnd.Float64() < 0.5 {
			return SideLeft
		}
		return SideRight
	}
}

func newSelection(headers []string, row int, side Side) Selection {
	sel := Selection{RowIndex: row, Side: side}
	if side == SideLeft {
		sel.FrontHeader, sel.BackHeader = headers[0], headers[1]
	} else {
		sel.FrontHeader, sel.BackHeader = headers[1], headers[0]
	}
	return sel
}

// SelectionFor rebuilds the selection of row with frontHeader in front, as a
// caller holding only those two values would need to before revealing.
func SelectionFor(deck *domain.Deck, row int, frontHeader string) (Selection, error) {
	if deck == nil || len(deck.Headers) < domain.MinHeaders {
		return Selection{}, ErrInvalidDeck
	}
	if _, err := deck.Row(row); err != nil {
		return Selection{}, err
	}
	switch frontHeader {
	case deck.Headers[0]:
		return newSelection(deck.Headers, row, SideLeft), nil
	case deck.Headers[1]:
		return newSelection(deck.Headers, row, SideRight), nil
	default:
		return Selection{}, ErrUnknownHeader
	}
}

// Front returns the value shown before the reveal.
func Front(deck *domain.Deck, sel Selection) (string, error) {
	row, err := checkSelection(deck, sel)
	if err != nil {
		return "", err
	}
	return row.Get(sel.FrontHeader), nil
}

// Reveal returns the answer side of the selected row. The selector does not
// decide when to reveal; it only maps the selection to content.
func Reveal(deck *domain.Deck, sel Selection) (string, error) {
	row, err := checkSelection(deck, sel)
	if err != nil {
		return "", err
	}
	return row.Get(sel.BackHeader), nil
}

// Rate returns a new ratings snapshot with rowIndex rated d. The input
// snapshot is left untouched; persisting the rating is the caller's job.
func Rate(deck *domain.Deck, ratings domain.Ratings, rowIndex int, d domain.Difficulty) (domain.Ratings, error) {
	if deck == nil {
		return nil, ErrInvalidDeck
	}
	if !d.IsRated() {
		return nil, domain.ErrInvalidDifficulty
	}
	if _, err := deck.Row(rowIndex); err != nil {
		return nil, err
	}
	return ratings.With(rowIndex, d), nil
}

func checkSelection(deck *domain.Deck, sel Selection) (domain.RowRecord, error) {
	if deck == nil || len(deck.Headers) < domain.MinHeaders {
		return nil, ErrInvalidDeck
	}
	row, err := deck.Row(sel.RowIndex)
	if err != nil {
		return nil, err
	}
	if !isSideHeader(deck.Headers, sel.FrontHeader) || !isSideHeader(deck.Headers, sel.BackHeader) {
		return nil, ErrUnknownHeader
	}
	return row, nil
}

func isSideHeader(headers []string, h string) bool {
	return h == headers[0] || h == headers[1]
}
