package rng

import (
	"math/rand"
	"time"
)

// Seeded is a reproducible generator backed by math/rand
type Seeded struct {
	seed int64
	rng  *rand.Rand
}

// NewSeeded returns a generator for the given seed
// If seed is 0, the current time is used. The seed actually used is available from Seed()
func NewSeeded(seed int64) *Seeded {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Seeded{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)), // nolint:gosec
	}
}

// Intn returns a random number from 0 < n
func (s *Seeded) Intn(n int) int {
	return s.rng.Intn(n)
}

// Seed returns the seed used by the generator
func (s *Seeded) Seed() int64 {
	return s.seed
}
