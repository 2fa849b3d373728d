// Package random provides the fixed pseudo-random stream used by puzzle generation.
//
// Puzzle layouts are part of a reproducibility contract: the same seed must produce the
// same puzzle in every release and in the browser tool that first published the
// format. [Mulberry32] is therefore pinned here instead of delegating to math/rand,
// whose generators are free to change between Go versions.
package random

import "math/rand/v2"

// Mulberry32 is a 32-bit state generator with a xorshift-multiply output mix.
// The zero value is a valid generator seeded with 0.
type Mulberry32 struct {
	state uint32
}

var _ rand.Source = (*Mulberry32)(nil)

// New returns a generator for seed. Seeds are reduced modulo 2^32, with negative seeds
// taken in two's complement.
func New(seed int64) *Mulberry32 {
	return &Mulberry32{state: uint32(seed)}
}

// Uint32 advances the generator and returns the next 32 bits.
func (m *Mulberry32) Uint32() uint32 {
	m.state += 0x6D2B79F5
	t := m.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return t ^ t>>14
}

// Float64 returns the next value in [0, 1).
func (m *Mulberry32) Float64() float64 {
	return float64(m.Uint32()) / 4294967296
}

// Uint64 combines two draws so the generator can back a [rand.Rand].
func (m *Mulberry32) Uint64() uint64 {
	hi := uint64(m.Uint32())
	return hi<<32 | uint64(m.Uint32())
}

// IntN returns a value in [0, n) as floor(Float64() * n). It panics if n <= 0.
func (m *Mulberry32) IntN(n int) int {
	if n <= 0 {
		panic("random: IntN called with n <= 0")
	}
	i := int(m.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Coin returns true when the next draw is strictly greater than one half.
func (m *Mulberry32) Coin() bool {
	return m.Float64() > 0.5
}
