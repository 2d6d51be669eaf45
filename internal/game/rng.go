package game

import "math/rand/v2"

// Rand is the source of randomness for rounds and players.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	// IntN returns a uniform int in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// NewSeededRand returns a PCG-backed source. The same seed and stream
// always produce the same sequence.
func NewSeededRand(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

// pick returns a uniformly selected door from candidates.
func pick(rng Rand, candidates []Door) (Door, error) {
	if len(candidates) == 0 {
		return 0, ErrExhaustedCandidates
	}
	return candidates[rng.IntN(len(candidates))], nil
}
