// Package sim generates deterministic synthetic OHLCV data: seeded random
// walk series, single-tick extension and rolling live feeds.
package sim

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rustyeddy/marketsim/market"
)

const (
	// Drift is the per-step expected return of the walk.
	Drift = 0.00002

	// DefaultDailyVolPct is the daily volatility used when none is given.
	DefaultDailyVolPct = 2.0

	// MaxMarketSearchSteps bounds the forward search for a session timestamp.
	MaxMarketSearchSteps = 5000

	minPrice  = 0.01
	minSpread = 0.001
	spreadPct = 0.0025
	baseDaily = 1_000_000
)

var (
	ErrInvalidOptions = errors.New("invalid generation options")
	ErrNoMarketTime   = errors.New("no market time found")
)

// Options configures GenerateSeries. The zero value of every field except
// Interval is usable, but note the zero MarketHoursOnly is false; use
// NewOptions for the terminal defaults.
type Options struct {
	Bars            int             `json:"bars" yaml:"bars"`
	Interval        market.Interval `json:"interval" yaml:"interval"`
	BasePrice       float64         `json:"base_price" yaml:"base_price"`
	DailyVolPct     float64         `json:"daily_vol_pct" yaml:"daily_vol_pct"`
	Seed            string          `json:"seed,omitempty" yaml:"seed,omitempty"`
	MarketHoursOnly bool            `json:"market_hours_only" yaml:"market_hours_only"`

	// Now anchors the last bar. Zero means the wall clock.
	Now time.Time `json:"-" yaml:"-"`
}

// NewOptions returns options with 2% daily volatility and market-hours gating.
func NewOptions(iv market.Interval, bars int, basePrice float64) Options {
	return Options{
		Bars:            bars,
		Interval:        iv,
		BasePrice:       basePrice,
		DailyVolPct:     DefaultDailyVolPct,
		MarketHoursOnly: true,
	}
}

func (o Options) Validate() error {
	if !o.Interval.Known() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidOptions, market.ErrUnknownInterval, o.Interval)
	}
	if o.Bars < 0 {
		return fmt.Errorf("%w: bars must not be negative, got %d", ErrInvalidOptions, o.Bars)
	}
	if math.IsNaN(o.BasePrice) || math.IsInf(o.BasePrice, 0) || o.BasePrice < 0 {
		return fmt.Errorf("%w: base price must be a non-negative number, got %v", ErrInvalidOptions, o.BasePrice)
	}
	if math.IsNaN(o.DailyVolPct) || math.IsInf(o.DailyVolPct, 0) || o.DailyVolPct < 0 {
		return fmt.Errorf("%w: daily volatility must be a non-negative number, got %v", ErrInvalidOptions, o.DailyVolPct)
	}
	return nil
}

// SeedFor returns the seed string GenerateSeries will use for symbol.
func (o Options) SeedFor(symbol string) string {
	if o.Seed != "" {
		return o.Seed
	}
	return symbol + "-" + string(o.Interval)
}

// GenerateSeries walks opts.Bars candles forward from a start point chosen so
// the final bar lands on the interval boundary at or before opts.Now. With
// market-hours gating, bars that would fall outside the session are pushed
// forward, so the tail can run past Now.
//
// The same symbol and options always produce the same candles.
func GenerateSeries(symbol string, opts Options) ([]market.Candle, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	step := opts.Interval.Seconds()
	stepsPerDay := opts.Interval.StepsPerDay()
	sigma := stepSigma(opts.DailyVolPct, stepsPerDay)
	intraday := opts.Interval.Intraday()
	gated := intraday && opts.MarketHoursOnly

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	r := NewRandFromString(opts.SeedFor(symbol))
	t := opts.Interval.Align(now.Unix()) - int64(maxInt(opts.Bars-1, 0))*step
	volBase := math.Max(1, math.Round(baseDaily/float64(stepsPerDay)))

	out := make([]market.Candle, 0, opts.Bars)
	prevClose := opts.BasePrice

	for i := 0; i < opts.Bars; i++ {
		if gated {
			next, err := nextMarketTime(t, step)
			if err != nil {
				return nil, fmt.Errorf("%s bar %d: %w", symbol, i, err)
			}
			t = next
		}

		c := walk(r, prevClose, sigma)
		c.Time = t

		shape := 1.0
		if intraday {
			phase := float64(int64(i)%stepsPerDay) / float64(stepsPerDay)
			shape = 0.7 + 0.6*math.Cos((phase-0.5)*2*math.Pi)
		}
		c.Volume = int64(math.Round(volBase * shape * (0.7 + 0.6*r.Float64())))

		out = append(out, c)
		prevClose = c.Close
		t += step
	}
	return out, nil
}

// walk draws one step of the geometric walk from prevClose. Time and Volume
// are left for the caller.
func walk(r *Rand, prevClose, sigma float64) market.Candle {
	shock := sigma * r.NormFloat64()
	closeP := math.Max(minPrice, prevClose*(1+Drift+shock))
	open := prevClose
	spread := math.Max(minSpread, spreadPct*open)
	high := math.Max(open, closeP) + spread*(0.3+r.Float64())
	low := math.Min(open, closeP) - spread*(0.3+r.Float64())
	return market.Candle{Open: open, High: high, Low: low, Close: closeP}
}

// stepSigma scales a daily volatility percent to one bar.
func stepSigma(dailyVolPct float64, stepsPerDay int64) float64 {
	return dailyVolPct / 100 / math.Sqrt(float64(stepsPerDay))
}

// nextMarketTime advances t by step until it is inside the session.
func nextMarketTime(t, step int64) (int64, error) {
	for n := 0; !market.IsMarketTime(t); n++ {
		if n >= MaxMarketSearchSteps {
			return 0, fmt.Errorf("%w within %d steps of %d", ErrNoMarketTime, MaxMarketSearchSteps, t)
		}
		t += step
	}
	return t, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
