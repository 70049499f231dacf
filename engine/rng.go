package engine

import "math/rand"

// RNG wraps math/rand.Rand with deterministic position tracking.
// Position increments with every draw, so a seeded game can be
// replayed and diagnosed draw by draw.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// NewRNG creates a new deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// IntRange returns a uniform integer in [lo, hi]. hi < lo returns lo.
func (r *RNG) IntRange(lo, hi int) int {
	r.pos++
	if hi <= lo {
		return lo
	}
	return lo + r.src.Intn(hi-lo+1)
}

// Float64 returns a uniform float in [0, 1).
func (r *RNG) Float64() float64 {
	r.pos++
	return r.src.Float64()
}

// Shuffle permutes n elements uniformly via swap.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	r.pos++
	r.src.Shuffle(n, swap)
}

// Sample returns k distinct indices from [0, n), in draw order.
// k is clamped to n.
func (r *RNG) Sample(n, k int) []int {
	r.pos++
	if k > n {
		k = n
	}
	if k <= 0 {
		return []int{}
	}
	return r.src.Perm(n)[:k]
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}
