package engine

import (
	"math/rand"
	"time"
)

// RNG is the randomness source the engine draws from. *math/rand.Rand
// satisfies it; tests substitute fixed sequences to assert exact
// sampled outcomes.
type RNG interface {
	Float64() float64
	Intn(n int) int
}

// NewSeededRNG returns a deterministic source for replayable matches.
func NewSeededRNG(seed int64) RNG {
	return rand.New(rand.NewSource(seed)) //nolint:gosec // simulation randomness, not crypto
}

// newTimeRNG returns the default nondeterministic source. A simulated
// contest is intentionally not reproducible unless seeded.
func newTimeRNG() RNG {
	return rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // simulation randomness, not crypto
}
