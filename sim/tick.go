package sim

import (
	"math"
	"strconv"

	"github.com/rustyeddy/marketsim/market"
)

// NextTickFromLast continues the walk one bar past last. The generator is
// seeded from seed plus last.Time, so extending the same candle twice gives
// the same result. No market-hours check is made.
func NextTickFromLast(last market.Candle, iv market.Interval, volPct float64, seed string) market.Candle {
	r := NewRandFromString(seed + strconv.FormatInt(last.Time, 10))
	sigma := stepSigma(volPct, iv.StepsPerDay())

	c := walk(r, last.Close, sigma)
	c.Time = last.Time + iv.Seconds()
	c.Volume = int64(math.Round(float64(last.Volume) * (0.8 + 0.4*r.Float64())))
	if c.Volume < 1 {
		c.Volume = 1
	}
	return c
}
