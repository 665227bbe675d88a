// Package indicators provides technical indicators over generated candles.
package indicators

import "github.com/rustyeddy/marketsim/market"

// Indicator computes a single streaming value from candles.
// It is deterministic, so a replayed feed yields the same readings.
type Indicator interface {
	// Name returns a stable identifier like "EMA(20)".
	Name() string

	// Warmup returns how many updates are needed before Ready() can be true.
	Warmup() int

	Reset()

	// Update consumes the next closed candle.
	Update(c market.Candle)

	Ready() bool

	// Value is meaningful only once Ready reports true.
	Value() float64
}

// Run feeds every candle to ind and returns the final value.
func Run(ind Indicator, candles []market.Candle) (float64, bool) {
	for _, c := range candles {
		ind.Update(c)
	}
	return ind.Value(), ind.Ready()
}
