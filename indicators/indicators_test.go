package indicators

import (
	"testing"

	"github.com/rustyeddy/marketsim/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closes(vals ...float64) []market.Candle {
	out := make([]market.Candle, len(vals))
	for i, v := range vals {
		out[i] = market.Candle{Time: int64(i) * 60, Open: v, High: v, Low: v, Close: v, Volume: 1}
	}
	return out
}

func createTestCandles() []market.Candle {
	return []market.Candle{
		{Open: 100, High: 105, Low: 99, Close: 102},
		{Open: 102, High: 107, Low: 101, Close: 105},
		{Open: 105, High: 108, Low: 104, Close: 106},
		{Open: 106, High: 110, Low: 105, Close: 108},
		{Open: 108, High: 112, Low: 107, Close: 110},
		{Open: 110, High: 113, Low: 109, Close: 111},
		{Open: 111, High: 115, Low: 110, Close: 113},
		{Open: 113, High: 116, Low: 112, Close: 114},
		{Open: 114, High: 118, Low: 113, Close: 116},
		{Open: 116, High: 120, Low: 115, Close: 118},
	}
}

func TestSMA(t *testing.T) {
	candles := createTestCandles()

	ma, err := SMA(candles, 5)
	require.NoError(t, err)
	// Last 5 closes: 111,113,114,116,118 => 572/5 = 114.4
	assert.InDelta(t, 114.4, ma, 0.001)

	_, err = SMA(candles, 0)
	assert.Error(t, err)
	_, err = SMA(candles, 11)
	assert.Error(t, err)
}

func TestEMA(t *testing.T) {
	ema, err := EMA(closes(1, 2, 3, 4, 5), 3)
	require.NoError(t, err)
	// seed 2, then (4-2)*0.5+2 = 3, (5-3)*0.5+3 = 4
	assert.InDelta(t, 4.0, ema, 1e-9)

	_, err = EMA(closes(1, 2), 3)
	assert.Error(t, err)
}

func TestStreamingSMAMatchesBatch(t *testing.T) {
	candles := createTestCandles()
	m := NewSMA(4)
	assert.Equal(t, "SMA(4)", m.Name())
	assert.Equal(t, 4, m.Warmup())

	for i, c := range candles {
		m.Update(c)
		if i < 3 {
			assert.False(t, m.Ready())
			assert.Equal(t, 0.0, m.Value())
			continue
		}
		want, err := SMA(candles[:i+1], 4)
		require.NoError(t, err)
		assert.InDelta(t, want, m.Value(), 1e-9)
	}

	m.Reset()
	assert.False(t, m.Ready())
}

func TestATRFuncDetailed(t *testing.T) {
	candles := []market.Candle{
		{High: 10, Low: 8, Close: 9},
		{High: 11, Low: 9, Close: 10},
		{High: 12, Low: 10, Close: 11},
		{High: 11, Low: 9, Close: 10},
		{High: 12, Low: 10, Close: 11},
		{High: 13, Low: 11, Close: 12},
	}
	atr, err := ATRFunc(candles, 3)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, atr, 1e-9)

	_, err = ATRFunc(candles[:3], 3)
	assert.Error(t, err)
}

func TestTrueRange(t *testing.T) {
	current := market.Candle{High: 110, Low: 100, Close: 105}
	assert.Equal(t, 10.0, trueRange(current, 104))
	// gap up: distance from prior close dominates
	assert.Equal(t, 20.0, trueRange(current, 90))
	assert.Equal(t, 25.0, trueRange(current, 125))
}

func TestRSI(t *testing.T) {
	r := NewRSI(3)
	v, ok := Run(r, closes(1, 2, 3, 4, 5))
	assert.True(t, ok)
	assert.Equal(t, 100.0, v)

	r.Reset()
	v, ok = Run(r, closes(5, 5, 5, 5))
	assert.True(t, ok)
	assert.Equal(t, 50.0, v)

	r2 := NewRSI(2)
	v, ok = Run(r2, closes(10, 11, 10, 11, 10))
	assert.True(t, ok)
	assert.InDelta(t, 37.5, v, 1e-9)

	_, ok = Run(NewRSI(14), closes(1, 2, 3))
	assert.False(t, ok)
}

func TestVWAP(t *testing.T) {
	candles := []market.Candle{
		{High: 10, Low: 10, Close: 10, Volume: 1},
		{High: 20, Low: 20, Close: 20, Volume: 3},
	}
	assert.InDelta(t, 17.5, VWAP(candles), 1e-9)
	assert.Equal(t, 0.0, VWAP(nil))
}

func TestSummarize(t *testing.T) {
	short := Summarize(createTestCandles())
	assert.Equal(t, 10, short.Bars)
	assert.Equal(t, 118.0, short.Last)
	assert.Equal(t, 120.0, short.High)
	assert.Equal(t, 99.0, short.Low)
	assert.Nil(t, short.SMA20)
	assert.Nil(t, short.EMA50)
	assert.Nil(t, short.RSI14)

	vals := make([]float64, 60)
	for i := range vals {
		vals[i] = 100 + float64(i)
	}
	long := Summarize(closes(vals...))
	require.NotNil(t, long.SMA20)
	require.NotNil(t, long.EMA50)
	require.NotNil(t, long.ATR14)
	require.NotNil(t, long.RSI14)
	assert.InDelta(t, 149.5, *long.SMA20, 1e-9)
	assert.Equal(t, 100.0, *long.RSI14)
	assert.Equal(t, int64(60), long.Volume)

	assert.Equal(t, Summary{}, Summarize(nil))
}
