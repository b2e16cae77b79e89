// Package rng provides seedable random sources for maze carving.
package rng

import (
	"time"
)

// FastRand is a xorshift64 (13, 17, 5) generator. Not safe for concurrent use.
type FastRand struct {
	state uint64
	seed  uint64
}

// NewFastRand seeds a generator; seed 0 is remapped to 1 since xorshift sticks at zero
func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed, seed: seed}
}

// New returns a FastRand for seed, or a time-seeded one when seed is 0
func New(seed int64) *FastRand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewFastRand(uint64(seed))
}

// Seed returns the effective seed the generator started from
func (r *FastRand) Seed() uint64 {
	return r.seed
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Intn returns a value in [0, n); n <= 0 yields 0
func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Sequence replays a fixed list of draws, cycling when exhausted.
// Each draw is reduced modulo the requested bound.
type Sequence struct {
	values []int
	pos    int
}

// NewSequence creates a replay source. An empty sequence always draws 0.
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: values}
}

func (s *Sequence) Intn(n int) int {
	if n <= 0 || len(s.values) == 0 {
		s.pos++
		return 0
	}
	v := s.values[s.pos%len(s.values)] % n
	if v < 0 {
		v += n
	}
	s.pos++
	return v
}

// Draws returns how many values have been requested
func (s *Sequence) Draws() int {
	return s.pos
}
