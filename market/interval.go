package market

import (
	"errors"
	"fmt"
	"strings"
)

// Interval is one of the fixed chart timeframes.
type Interval string

const (
	M1  Interval = "1m"
	M5  Interval = "5m"
	M15 Interval = "15m"
	H1  Interval = "1H"
	D1  Interval = "D"
	W1  Interval = "W"
)

const SecondsPerDay = 86400

var ErrUnknownInterval = errors.New("unknown interval")

var intervalSeconds = map[Interval]int64{
	M1:  60,
	M5:  300,
	M15: 900,
	H1:  3600,
	D1:  86400,
	W1:  604800,
}

// bars shown on the terminal chart for each timeframe
var defaultBars = map[Interval]int{
	M1:  600, // ~10h
	M5:  600, // ~2d
	M15: 400, // ~4d
	H1:  500, // ~3w
	D1:  365, // 1y
	W1:  260, // 5y
}

// Intervals returns every supported interval, shortest first.
func Intervals() []Interval {
	return []Interval{M1, M5, M15, H1, D1, W1}
}

// ParseInterval accepts the canonical names plus a few common aliases
// ("1h", "1d", "1w", "M1", "H1", "D1", "W1").
func ParseInterval(s string) (Interval, error) {
	s = strings.TrimSpace(s)
	if _, ok := intervalSeconds[Interval(s)]; ok {
		return Interval(s), nil
	}
	switch strings.ToUpper(s) {
	case "M1":
		return M1, nil
	case "M5":
		return M5, nil
	case "M15":
		return M15, nil
	case "1H", "H1", "60M":
		return H1, nil
	case "D", "1D", "D1":
		return D1, nil
	case "W", "1W", "W1":
		return W1, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownInterval, s)
}

func (iv Interval) String() string { return string(iv) }

// Known reports whether iv is one of the supported intervals.
func (iv Interval) Known() bool {
	_, ok := intervalSeconds[iv]
	return ok
}

// Seconds returns the bar length, or 0 for an unknown interval.
func (iv Interval) Seconds() int64 {
	return intervalSeconds[iv]
}

// Intraday reports whether bars are shorter than one day.
func (iv Interval) Intraday() bool {
	s := iv.Seconds()
	return s > 0 && s < SecondsPerDay
}

// StepsPerDay is floor(86400/step), never less than 1.
func (iv Interval) StepsPerDay() int64 {
	s := iv.Seconds()
	if s <= 0 {
		return 1
	}
	n := SecondsPerDay / s
	if n < 1 {
		return 1
	}
	return n
}

// DefaultBars is the chart window length for the interval.
func (iv Interval) DefaultBars() int {
	if n, ok := defaultBars[iv]; ok {
		return n
	}
	return 500
}

// Align rounds ts down to the nearest interval boundary.
func (iv Interval) Align(ts int64) int64 {
	s := iv.Seconds()
	if s <= 0 {
		return ts
	}
	return floorDiv(ts, s) * s
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
