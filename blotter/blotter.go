// Package blotter records paper market orders against generated prices and
// reports the resulting position.
package blotter

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rustyeddy/marketsim/journal"
	"github.com/rustyeddy/marketsim/pkg/id"
)

type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

var ErrInvalidOrder = errors.New("invalid order")

// ParseSide accepts BUY or SELL in any case.
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToUpper(strings.TrimSpace(s))) {
	case Buy:
		return Buy, nil
	case Sell:
		return Sell, nil
	}
	return "", fmt.Errorf("%w: unknown side %q", ErrInvalidOrder, s)
}

// sign is +1 for buys, -1 for sells.
func (s Side) sign() int64 {
	if s == Sell {
		return -1
	}
	return 1
}

type Fill struct {
	ID     string    `json:"id"`
	Symbol string    `json:"symbol"`
	Side   Side      `json:"side"`
	Qty    int64     `json:"qty"`
	Price  float64   `json:"price"`
	Time   time.Time `json:"time"`
}

// Position is the net holding in one symbol marked at a last price.
type Position struct {
	Symbol     string  `json:"symbol"`
	Qty        int64   `json:"qty"`
	Avg        float64 `json:"avg"`
	Unrealized float64 `json:"unrealized"`
}

// Blotter keeps fills newest first. It is safe for concurrent use.
type Blotter struct {
	mu    sync.RWMutex
	fills []Fill
	j     journal.Journal
	now   func() time.Time
}

// New returns an empty blotter. A nil journal discards fills.
func New(j journal.Journal) *Blotter {
	if j == nil {
		j = journal.Nop{}
	}
	return &Blotter{j: j, now: time.Now}
}

// Submit fills a market order of qty shares at price.
func (b *Blotter) Submit(side Side, symbol string, qty int64, price float64) (Fill, error) {
	if side != Buy && side != Sell {
		return Fill{}, fmt.Errorf("%w: unknown side %q", ErrInvalidOrder, side)
	}
	if symbol == "" {
		return Fill{}, fmt.Errorf("%w: symbol is required", ErrInvalidOrder)
	}
	if qty < 1 {
		return Fill{}, fmt.Errorf("%w: quantity must be at least 1, got %d", ErrInvalidOrder, qty)
	}
	if price <= 0 {
		return Fill{}, fmt.Errorf("%w: price must be positive, got %v", ErrInvalidOrder, price)
	}

	now := b.now().UTC()
	f := Fill{
		ID:     id.NewAt(now),
		Symbol: symbol,
		Side:   side,
		Qty:    qty,
		Price:  price,
		Time:   now,
	}

	if err := b.j.RecordFill(journal.FillRecord{
		ID:     f.ID,
		Symbol: f.Symbol,
		Side:   string(f.Side),
		Qty:    f.Qty,
		Price:  f.Price,
		Time:   f.Time,
	}); err != nil {
		return Fill{}, fmt.Errorf("record fill: %w", err)
	}

	b.mu.Lock()
	b.fills = append([]Fill{f}, b.fills...)
	b.mu.Unlock()

	return f, nil
}

// Fills returns the history for symbol, newest first. An empty symbol
// returns every fill.
func (b *Blotter) Fills(symbol string) []Fill {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Fill, 0, len(b.fills))
	for _, f := range b.fills {
		if symbol == "" || f.Symbol == symbol {
			out = append(out, f)
		}
	}
	return out
}

// Position nets the symbol's fills. Avg is signed cost over net quantity and
// 0 when flat; Unrealized is Qty * (last - Avg).
func (b *Blotter) Position(symbol string, last float64) Position {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var qty int64
	var cost float64
	for _, f := range b.fills {
		if f.Symbol != symbol {
			continue
		}
		qty += f.Side.sign() * f.Qty
		cost += float64(f.Side.sign()*f.Qty) * f.Price
	}

	p := Position{Symbol: symbol, Qty: qty}
	if qty != 0 {
		p.Avg = cost / float64(qty)
	}
	p.Unrealized = UnrealizedPL(qty, p.Avg, last)
	return p
}

// UnrealizedPL marks qty shares bought (or sold, if negative) at entry to last.
func UnrealizedPL(qty int64, entry, last float64) float64 {
	return float64(qty) * (last - entry)
}
