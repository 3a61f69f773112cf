package review

import (
	"github.com/phrazzld/scry-decks/internal/domain"
)

// Weights maps each difficulty, including unreported, to the probability
// mass a row with that rating receives in a pick.
type Weights map[domain.Difficulty]int

// DefaultWeights returns the standard weight table. Harder rows come up more
// often than easier ones, and unrated rows outrank every rating so new cards
// surface quickly.
func DefaultWeights() Weights {
	return Weights{
		domain.DifficultyHard:        4,
		domain.DifficultyChallenging: 3,
		domain.DifficultyNormal:      2,
		domain.DifficultyEasy:        1,
		domain.DifficultyUnreported:  5,
	}
}

// WeightsConfig allows overriding individual entries of the default table.
// Zero values keep the default.
type WeightsConfig struct {
	Hard        int
	Challenging int
	Normal      int
	Easy        int
	Unreported  int
}

// NewWeights creates a weight table from the defaults and the given overrides.
func NewWeights(config WeightsConfig) Weights {
	w := DefaultWeights()

	if config.Hard > 0 {
		w[domain.DifficultyHard] = config.Hard
	}
	if config.Challenging > 0 {
		w[domain.DifficultyChallenging] = config.Challenging
	}
	if config.Normal > 0 {
		w[domain.DifficultyNormal] = config.Normal
	}
	if config.Easy > 0 {
		w[domain.DifficultyEasy] = config.Easy
	}
	if config.Unreported > 0 {
		w[domain.DifficultyUnreported] = config.Unreported
	}

	return w
}

// Validate checks that every difficulty has a positive weight.
func (w Weights) Validate() error {
	for _, d := range domain.RatedDifficulties {
		if w[d] <= 0 {
			return ErrInvalidWeight
		}
	}
	if w[domain.DifficultyUnreported] <= 0 {
		return ErrInvalidWeight
	}
	return nil
}

// Of returns the weight of d. Unknown values weigh as unreported.
func (w Weights) Of(d domain.Difficulty) int {
	if v, ok := w[d]; ok {
		return v
	}
	return w[domain.DifficultyUnreported]
}
