package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeedFromString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want uint32
	}{
		{"", 1779033703},
		{"a", 1617361628},
		{"AAPL-1m", 2340515092},
		{"test-seed", 1262984287},
		// surrogate pair counts as two code units
		{"😀", 2342049946},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SeedFromString(tt.in))
		})
	}
}

func TestRandKnownSequence(t *testing.T) {
	t.Parallel()

	r := NewRand(1)
	assert.Equal(t, 0.6270739405881613, r.Float64())
	assert.Equal(t, 0.002735721180215478, r.Float64())
	assert.Equal(t, 0.5274470399599522, r.Float64())

	r = NewRandFromString("AAPL-1m")
	assert.Equal(t, 0.1447849862743169, r.Float64())
	assert.Equal(t, 0.2506302837282419, r.Float64())
	assert.Equal(t, 0.8138511311262846, r.Float64())
}

func TestRandDeterministic(t *testing.T) {
	t.Parallel()

	a := NewRandFromString("replay")
	b := NewRandFromString("replay")
	for i := 0; i < 1000; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestRandRange(t *testing.T) {
	t.Parallel()

	r := NewRand(42)
	for i := 0; i < 100_000; i++ {
		v := r.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("draw %d out of range: %v", i, v)
		}
	}
}

func TestNormFloat64Statistics(t *testing.T) {
	t.Parallel()

	const n = 20_000
	r := NewRandFromString("gaussian")

	var sum, sumSq float64
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = r.NormFloat64()
		sum += samples[i]
	}
	mean := sum / n
	for _, x := range samples {
		sumSq += (x - mean) * (x - mean)
	}
	variance := sumSq / (n - 1)

	assert.InDelta(t, 0, mean, 0.05)
	assert.InDelta(t, 1, variance, 0.05)
}

func TestNormFloat64Deterministic(t *testing.T) {
	t.Parallel()

	a := NewRand(7)
	b := NewRand(7)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.NormFloat64(), b.NormFloat64())
	}
}
