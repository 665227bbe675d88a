package sim

import (
	"math"
	"math/bits"
	"unicode/utf16"
)

// SeedFromString folds s into a nonzero 32-bit seed. Characters are taken as
// UTF-16 code units so seeds match those produced in a browser.
func SeedFromString(s string) uint32 {
	units := utf16.Encode([]rune(s))
	h := uint32(1779033703) ^ uint32(len(units))
	for _, c := range units {
		h = (h ^ uint32(c)) * 3432918353
		h = bits.RotateLeft32(h, 13)
	}
	if h == 0 {
		return 1
	}
	return h
}

// Rand is a mulberry32 generator. It is small and fast, not cryptographic,
// and not safe for concurrent use.
type Rand struct {
	state uint32
}

func NewRand(seed uint32) *Rand {
	return &Rand{state: seed}
}

func NewRandFromString(s string) *Rand {
	return NewRand(SeedFromString(s))
}

// Float64 returns a uniform value in [0, 1).
func (r *Rand) Float64() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return float64(t^t>>14) / 4294967296
}

// NormFloat64 returns a standard normal sample using Box-Muller.
// Zero draws are rejected so log never sees 0.
func (r *Rand) NormFloat64() float64 {
	var u, v float64
	for u == 0 {
		u = r.Float64()
	}
	for v == 0 {
		v = r.Float64()
	}
	return math.Sqrt(-2*math.Log(u)) * math.Cos(2*math.Pi*v)
}
