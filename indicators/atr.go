package indicators

import (
	"fmt"
	"math"

	"github.com/rustyeddy/marketsim/market"
)

// ATRFunc calculates the Average True Range with Wilder smoothing.
// It needs period+1 candles because the true range uses the prior close.
func ATRFunc(candles []market.Candle, period int) (float64, error) {
	if err := checkPeriod(len(candles), period, period+1); err != nil {
		return 0, err
	}
	v, _ := Run(NewATR(period), candles)
	return v, nil
}

// ATR is a streaming Average True Range indicator.
type ATR struct {
	period      int
	atr         float64
	count       int
	warmupSum   float64
	prevClose   float64
	hasPrevious bool
}

func NewATR(period int) *ATR {
	return &ATR{period: period}
}

func (a *ATR) Name() string { return fmt.Sprintf("ATR(%d)", a.period) }
func (a *ATR) Warmup() int  { return a.period + 1 }

func (a *ATR) Reset() {
	a.atr = 0
	a.count = 0
	a.warmupSum = 0
	a.hasPrevious = false
}

func (a *ATR) Update(c market.Candle) {
	if !a.hasPrevious {
		a.prevClose = c.Close
		a.hasPrevious = true
		return
	}

	tr := trueRange(c, a.prevClose)
	a.prevClose = c.Close

	if a.count < a.period {
		a.warmupSum += tr
		a.count++
		if a.count == a.period {
			a.atr = a.warmupSum / float64(a.period)
		}
		return
	}
	a.atr = (a.atr*float64(a.period-1) + tr) / float64(a.period)
}

func (a *ATR) Ready() bool { return a.period > 0 && a.count >= a.period }

func (a *ATR) Value() float64 {
	if !a.Ready() {
		return 0
	}
	return a.atr
}

func trueRange(c market.Candle, prevClose float64) float64 {
	highLow := c.High - c.Low
	highClose := math.Abs(c.High - prevClose)
	lowClose := math.Abs(c.Low - prevClose)
	return math.Max(highLow, math.Max(highClose, lowClose))
}
