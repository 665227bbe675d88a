package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsMarketTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"tuesday open", time.Date(2024, 1, 2, 13, 30, 0, 0, time.UTC), true},
		{"tuesday midday", time.Date(2024, 1, 2, 16, 0, 0, 0, time.UTC), true},
		{"tuesday close inclusive", time.Date(2024, 1, 2, 20, 0, 0, 0, time.UTC), true},
		{"tuesday after close", time.Date(2024, 1, 2, 20, 1, 0, 0, time.UTC), false},
		{"tuesday pre open", time.Date(2024, 1, 2, 13, 29, 0, 0, time.UTC), false},
		{"saturday midday", time.Date(2024, 1, 6, 16, 0, 0, 0, time.UTC), false},
		{"sunday midday", time.Date(2024, 1, 7, 16, 0, 0, 0, time.UTC), false},
		{"friday close", time.Date(2024, 1, 5, 20, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMarketTime(tt.at.Unix()))
		})
	}
}

func TestCandleValid(t *testing.T) {
	t.Parallel()

	assert.True(t, Candle{Open: 10, High: 11, Low: 9, Close: 10.5}.Valid())
	assert.True(t, Candle{Open: 10, High: 10, Low: 10, Close: 10}.Valid())
	assert.False(t, Candle{Open: 10, High: 10.2, Low: 9, Close: 10.5}.Valid())
	assert.False(t, Candle{Open: 10, High: 11, Low: 10.1, Close: 10.5}.Valid())
}

func TestCandleTimestamp(t *testing.T) {
	t.Parallel()

	c := Candle{Time: 1_704_202_200}
	assert.Equal(t, time.Date(2024, 1, 2, 13, 30, 0, 0, time.UTC), c.Timestamp())
}

func TestChangePct(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, ChangePct(nil))
	assert.Equal(t, 0.0, ChangePct([]Candle{{Close: 5}}))
	assert.InDelta(t, 10.0, ChangePct([]Candle{{Close: 100}, {Close: 90}, {Close: 110}}), 1e-9)
	assert.InDelta(t, -25.0, ChangePct([]Candle{{Close: 4}, {Close: 3}}), 1e-9)
}

func TestBasePrice(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 182.52, BasePrice("AAPL"))
	assert.Equal(t, FallbackPrice, BasePrice("ZZZZ"))
	syms := Symbols()
	assert.Len(t, syms, len(DefaultTickers))
	assert.Equal(t, "AAPL", syms[0])
	assert.Equal(t, "WMT", syms[len(syms)-1])
}

func TestWatchlist(t *testing.T) {
	t.Parallel()

	quotes := Watchlist(map[string]float64{"MSFT": 400})
	assert.Len(t, quotes, len(DefaultTickers))

	for _, q := range quotes {
		if q.Symbol == "MSFT" {
			assert.Equal(t, 400.0, q.Price)
			assert.InDelta(t, (400-378.85)/378.85*100, q.ChangePct, 1e-9)
			continue
		}
		assert.Equal(t, RestingPrice(q.Base), q.Price)
		// jitter is at most +/-0.12%
		assert.InDelta(t, 0, q.ChangePct, 0.121)
	}
}

func TestRestingPrice(t *testing.T) {
	t.Parallel()

	// 100 mod 7 = 2 -> jitter -0.03%
	assert.InDelta(t, 99.97, RestingPrice(100), 1e-9)
}
