package indicators

import (
	"fmt"

	"github.com/rustyeddy/marketsim/market"
)

// SMA calculates the simple moving average of the last period closes.
func SMA(candles []market.Candle, period int) (float64, error) {
	if err := checkPeriod(len(candles), period, period); err != nil {
		return 0, err
	}

	sum := 0.0
	for i := len(candles) - period; i < len(candles); i++ {
		sum += candles[i].Close
	}
	return sum / float64(period), nil
}

// EMA calculates the exponential moving average of closes, seeded with the
// SMA of the first period candles.
func EMA(candles []market.Candle, period int) (float64, error) {
	if err := checkPeriod(len(candles), period, period); err != nil {
		return 0, err
	}

	e := NewEMA(period)
	v, _ := Run(e, candles)
	return v, nil
}

func checkPeriod(have, period, need int) error {
	if period <= 0 {
		return fmt.Errorf("period must be positive, got %d", period)
	}
	if have < need {
		return fmt.Errorf("not enough candles: need %d, got %d", need, have)
	}
	return nil
}
