package market

import (
	"math"
	"time"
)

// Candle represents one OHLCV bar. Time is the bar open in unix seconds.
type Candle struct {
	Time   int64   `json:"time" yaml:"time"`
	Open   float64 `json:"open" yaml:"open"`
	High   float64 `json:"high" yaml:"high"`
	Low    float64 `json:"low" yaml:"low"`
	Close  float64 `json:"close" yaml:"close"`
	Volume int64   `json:"volume" yaml:"volume"`
}

// Timestamp returns the bar open as a UTC time.
func (c Candle) Timestamp() time.Time {
	return time.Unix(c.Time, 0).UTC()
}

// Valid reports whether the wicks enclose the body.
func (c Candle) Valid() bool {
	return c.Low <= math.Min(c.Open, c.Close) && c.High >= math.Max(c.Open, c.Close)
}

// ChangePct returns the percent move from the first close to the last close.
// Fewer than two candles yield 0.
func ChangePct(candles []Candle) float64 {
	if len(candles) < 2 {
		return 0
	}
	first := candles[0].Close
	if first == 0 {
		return 0
	}
	return (candles[len(candles)-1].Close - first) / first * 100
}
