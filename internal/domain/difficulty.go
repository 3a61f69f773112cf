package domain

// Difficulty is the label a user assigns to a row after revealing its answer.
type Difficulty string

// Possible difficulty values. DifficultyUnreported is never stored; it stands
// for a row that has not been rated yet.
const (
	DifficultyEasy        Difficulty = "easy"
	DifficultyNormal      Difficulty = "normal"
	DifficultyChallenging Difficulty = "challenging"
	DifficultyHard        Difficulty = "hard"
	DifficultyUnreported  Difficulty = "unreported"
)

// RatedDifficulties lists the values a user can assign, easiest first.
var RatedDifficulties = []Difficulty{
	DifficultyEasy,
	DifficultyNormal,
	DifficultyChallenging,
	DifficultyHard,
}

// IsRated reports whether d is one of the values a user can assign.
func (d Difficulty) IsRated() bool {
	switch d {
	case DifficultyEasy, DifficultyNormal, DifficultyChallenging, DifficultyHard:
		return true
	default:
		return false
	}
}

// ParseDifficulty converts s into a rated Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if !d.IsRated() {
		return "", ErrInvalidDifficulty
	}
	return d, nil
}

// Ratings is a snapshot of a user's difficulty ratings for one deck, keyed by
// row index. Rows without an entry are unreported.
type Ratings map[int]Difficulty

// Of returns the rating of row i, or DifficultyUnreported.
func (r Ratings) Of(i int) Difficulty {
	if d, ok := r[i]; ok && d.IsRated() {
		return d
	}
	return DifficultyUnreported
}

// With returns a copy of r with row i rated d. The receiver is not modified.
func (r Ratings) With(i int, d Difficulty) Ratings {
	out := make(Ratings, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	out[i] = d
	return out
}

// Tally counts rows per difficulty for a deck of rowCount rows, counting rows
// without a rating as unreported. Ratings for indexes outside the deck are ignored.
func (r Ratings) Tally(rowCount int) map[Difficulty]int {
	counts := map[Difficulty]int{
		DifficultyHard:        0,
		DifficultyChallenging: 0,
		DifficultyNormal:      0,
		DifficultyEasy:        0,
		DifficultyUnreported:  0,
	}
	for i := 0; i < rowCount; i++ {
		counts[r.Of(i)]++
	}
	return counts
}
