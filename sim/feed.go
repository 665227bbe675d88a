package sim

import (
	"errors"
	"sync"
	"time"

	"github.com/rustyeddy/marketsim/market"
)

// FeedOptions configures a live Feed. Zero values fall back to the terminal
// defaults: interval window length, 2% volatility, the symbol's base price.
type FeedOptions struct {
	Bars        int
	BasePrice   float64
	DailyVolPct float64
	Seed        string

	// AllHours disables market-hours gating for the initial series.
	AllHours bool
	Now      time.Time
}

// Feed holds a rolling candle window for one symbol and interval. Tick
// extends it by one bar and drops the oldest once the window is full.
// A Feed is safe for concurrent use.
type Feed struct {
	symbol   string
	interval market.Interval
	volPct   float64
	seed     string
	cap      int

	mu      sync.RWMutex
	candles []market.Candle
}

func NewFeed(symbol string, iv market.Interval, fo FeedOptions) (*Feed, error) {
	if fo.Bars <= 0 {
		fo.Bars = iv.DefaultBars()
	}
	if fo.BasePrice <= 0 {
		fo.BasePrice = market.BasePrice(symbol)
	}
	if fo.DailyVolPct <= 0 {
		fo.DailyVolPct = DefaultDailyVolPct
	}

	opts := NewOptions(iv, fo.Bars, fo.BasePrice)
	opts.DailyVolPct = fo.DailyVolPct
	opts.Seed = fo.Seed
	opts.MarketHoursOnly = !fo.AllHours
	opts.Now = fo.Now

	candles, err := GenerateSeries(symbol, opts)
	if err != nil {
		return nil, err
	}

	// live ticks are seeded by symbol unless a seed was given
	seed := fo.Seed
	if seed == "" {
		seed = symbol
	}

	return &Feed{
		symbol:   symbol,
		interval: iv,
		volPct:   fo.DailyVolPct,
		seed:     seed,
		cap:      fo.Bars,
		candles:  candles,
	}, nil
}

func (f *Feed) Symbol() string            { return f.symbol }
func (f *Feed) Interval() market.Interval { return f.interval }
func (f *Feed) Cap() int                  { return f.cap }

// Tick appends the next bar and returns it.
func (f *Feed) Tick() (market.Candle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.candles) == 0 {
		return market.Candle{}, errors.New("feed has no candles to extend")
	}

	next := NextTickFromLast(f.candles[len(f.candles)-1], f.interval, f.volPct, f.seed)
	f.candles = append(f.candles, next)
	if over := len(f.candles) - f.cap; over > 0 {
		// copy down so the backing array doesn't grow without bound
		n := copy(f.candles, f.candles[over:])
		f.candles = f.candles[:n]
	}
	return next, nil
}

// Candles returns a copy of the current window.
func (f *Feed) Candles() []market.Candle {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]market.Candle, len(f.candles))
	copy(out, f.candles)
	return out
}

// Last returns the newest bar.
func (f *Feed) Last() (market.Candle, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if len(f.candles) == 0 {
		return market.Candle{}, false
	}
	return f.candles[len(f.candles)-1], true
}

// LastPrice returns the newest close, or the symbol's base price when empty.
func (f *Feed) LastPrice() float64 {
	if c, ok := f.Last(); ok {
		return c.Close
	}
	return market.BasePrice(f.symbol)
}

func (f *Feed) ChangePct() float64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return market.ChangePct(f.candles)
}
