package review

import "math/rand/v2"

// RandSource yields uniform floats in [0, 1). *rand.Rand satisfies it.
// Pick draws once for the weighted walk and once more when the side is left
// to chance.
type RandSource interface {
	Float64() float64
}

// NewSource returns a seeded, reproducible source. It is not safe for
// concurrent use.
func NewSource(seed uint64) RandSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// DefaultSource returns a source backed by the runtime's goroutine-safe
// generator.
func DefaultSource() RandSource {
	return globalSource{}
}

type globalSource struct{}

func (globalSource) Float64() float64 {
	return rand.Float64()
}
