package market

import (
	"math"
	"sort"
)

// FallbackPrice is used for symbols missing from DefaultTickers.
const FallbackPrice = 100.0

// DefaultTickers maps the watchlist symbols to their base prices.
var DefaultTickers = map[string]float64{
	"AAPL":  182.52,
	"MSFT":  378.85,
	"GOOGL": 142.65,
	"NVDA":  522.48,
	"TSLA":  238.45,
	"AMZN":  195.72,
	"META":  261.16,
	"JPM":   436.78,
	"V":     225.76,
	"WMT":   480.97,
}

// BasePrice returns the table price for symbol or FallbackPrice.
func BasePrice(symbol string) float64 {
	if p, ok := DefaultTickers[symbol]; ok {
		return p
	}
	return FallbackPrice
}

// Symbols returns the default tickers in alphabetical order.
func Symbols() []string {
	out := make([]string, 0, len(DefaultTickers))
	for s := range DefaultTickers {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Quote is one watchlist row.
type Quote struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Base      float64 `json:"base"`
	ChangePct float64 `json:"change_pct"`
}

// RestingPrice nudges a base price by a small symbol-stable jitter so an idle
// watchlist doesn't show every row at exactly 0%.
func RestingPrice(base float64) float64 {
	jitter := (math.Mod(base, 7) - 3) * 0.03
	return base * (1 + jitter/100)
}

// Watchlist builds quotes for every default ticker. Symbols present in last
// use that price, the rest use RestingPrice.
func Watchlist(last map[string]float64) []Quote {
	syms := Symbols()
	out := make([]Quote, 0, len(syms))
	for _, s := range syms {
		base := DefaultTickers[s]
		p, ok := last[s]
		if !ok {
			p = RestingPrice(base)
		}
		out = append(out, Quote{
			Symbol:    s,
			Price:     p,
			Base:      base,
			ChangePct: (p - base) / base * 100,
		})
	}
	return out
}
