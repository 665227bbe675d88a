package scheduler

import (
	"sort"
	"sync"

	"github.com/rustyeddy/marketsim/market"
	"github.com/rustyeddy/marketsim/sim"
)

// subscriberBuffer is how many candles a slow subscriber may fall behind
// before new ones are dropped for it.
const subscriberBuffer = 16

// Registry owns the live feeds keyed by symbol and interval and fans new
// candles out to subscribers.
type Registry struct {
	defaults sim.FeedOptions

	mu    sync.RWMutex
	feeds map[string]*sim.Feed
	subs  map[string]map[chan market.Candle]struct{}
}

// NewRegistry creates feeds on demand with defaults applied.
func NewRegistry(defaults sim.FeedOptions) *Registry {
	return &Registry{
		defaults: defaults,
		feeds:    make(map[string]*sim.Feed),
		subs:     make(map[string]map[chan market.Candle]struct{}),
	}
}

func key(symbol string, iv market.Interval) string {
	return symbol + "/" + string(iv)
}

// Get returns the feed for symbol and iv, generating it on first use.
func (r *Registry) Get(symbol string, iv market.Interval) (*sim.Feed, error) {
	k := key(symbol, iv)

	r.mu.RLock()
	f, ok := r.feeds[k]
	r.mu.RUnlock()
	if ok {
		return f, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.feeds[k]; ok {
		return f, nil
	}
	f, err := sim.NewFeed(symbol, iv, r.defaults)
	if err != nil {
		return nil, err
	}
	r.feeds[k] = f
	return f, nil
}

// Lookup returns an existing feed without creating one.
func (r *Registry) Lookup(symbol string, iv market.Interval) (*sim.Feed, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.feeds[key(symbol, iv)]
	return f, ok
}

// Feeds returns every feed ordered by symbol then interval.
func (r *Registry) Feeds() []*sim.Feed {
	r.mu.RLock()
	keys := make([]string, 0, len(r.feeds))
	for k := range r.feeds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*sim.Feed, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.feeds[k])
	}
	r.mu.RUnlock()
	return out
}

// LastPrices maps each symbol to the close of its most recently updated feed.
func (r *Registry) LastPrices() map[string]float64 {
	type mark struct {
		t     int64
		price float64
	}
	marks := map[string]mark{}
	for _, f := range r.Feeds() {
		c, ok := f.Last()
		if !ok {
			continue
		}
		if m, seen := marks[f.Symbol()]; !seen || c.Time > m.t {
			marks[f.Symbol()] = mark{t: c.Time, price: c.Close}
		}
	}
	out := make(map[string]float64, len(marks))
	for s, m := range marks {
		out[s] = m.price
	}
	return out
}

// Subscribe returns a channel receiving every new candle of the feed and a
// cancel func that must be called to release it.
func (r *Registry) Subscribe(symbol string, iv market.Interval) (<-chan market.Candle, func()) {
	k := key(symbol, iv)
	ch := make(chan market.Candle, subscriberBuffer)

	r.mu.Lock()
	if r.subs[k] == nil {
		r.subs[k] = make(map[chan market.Candle]struct{})
	}
	r.subs[k][ch] = struct{}{}
	r.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.subs[k], ch)
			if len(r.subs[k]) == 0 {
				delete(r.subs, k)
			}
			r.mu.Unlock()
			close(ch)
		})
	}
}

// Publish hands c to every subscriber of the feed without blocking.
// It returns how many subscribers dropped the candle.
func (r *Registry) Publish(symbol string, iv market.Interval, c market.Candle) (dropped int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for ch := range r.subs[key(symbol, iv)] {
		select {
		case ch <- c:
		default:
			dropped++
		}
	}
	return dropped
}
