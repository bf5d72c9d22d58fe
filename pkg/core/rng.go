package core

import (
	"math/rand/v2"

	"mesh-squares/pkg/geom"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.r.Float64() < p
}

// IntN returns a random int in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// PointIn returns a uniformly distributed point in [0, size)².
func (r *RNG) PointIn(size float64) geom.Vec2 {
	return geom.Vec2{X: r.r.Float64() * size, Y: r.r.Float64() * size}
}
