package market

import "time"

// Simulated regular session in UTC: 13:30-20:00 stands in for 9:30-16:00 US
// Eastern. Daylight saving is ignored.
const (
	SessionOpenMinute  = 13*60 + 30
	SessionCloseMinute = 20 * 60
)

// IsMarketTime reports whether ts (unix seconds) falls Monday-Friday inside
// the session window, both ends inclusive.
func IsMarketTime(ts int64) bool {
	t := time.Unix(ts, 0).UTC()
	wd := t.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	mins := t.Hour()*60 + t.Minute()
	return mins >= SessionOpenMinute && mins <= SessionCloseMinute
}
