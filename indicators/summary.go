package indicators

import "github.com/rustyeddy/marketsim/market"

// VWAP is the volume-weighted average of typical prices (H+L+C)/3.
func VWAP(candles []market.Candle) float64 {
	var pv, vol float64
	for _, c := range candles {
		tp := (c.High + c.Low + c.Close) / 3
		pv += tp * float64(c.Volume)
		vol += float64(c.Volume)
	}
	if vol == 0 {
		return 0
	}
	return pv / vol
}

// Summary is the indicator panel for one candle window. Readings that have
// not warmed up are omitted from the JSON.
type Summary struct {
	Bars      int      `json:"bars"`
	Last      float64  `json:"last"`
	ChangePct float64  `json:"change_pct"`
	High      float64  `json:"high"`
	Low       float64  `json:"low"`
	Volume    int64    `json:"volume"`
	VWAP      float64  `json:"vwap"`
	SMA20     *float64 `json:"sma20,omitempty"`
	EMA50     *float64 `json:"ema50,omitempty"`
	ATR14     *float64 `json:"atr14,omitempty"`
	RSI14     *float64 `json:"rsi14,omitempty"`
}

// Summarize computes the panel in one pass over the streaming indicators.
func Summarize(candles []market.Candle) Summary {
	s := Summary{Bars: len(candles)}
	if len(candles) == 0 {
		return s
	}

	s.Last = candles[len(candles)-1].Close
	s.ChangePct = market.ChangePct(candles)
	s.High = candles[0].High
	s.Low = candles[0].Low
	for _, c := range candles {
		if c.High > s.High {
			s.High = c.High
		}
		if c.Low < s.Low {
			s.Low = c.Low
		}
		s.Volume += c.Volume
	}
	s.VWAP = VWAP(candles)

	reading := func(ind Indicator) *float64 {
		v, ok := Run(ind, candles)
		if !ok {
			return nil
		}
		return &v
	}
	s.SMA20 = reading(NewSMA(20))
	s.EMA50 = reading(NewEMA(50))
	s.ATR14 = reading(NewATR(14))
	s.RSI14 = reading(NewRSI(14))
	return s
}
