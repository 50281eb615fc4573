package utils

import "time"

// RunTimeLayout is the human-readable layout used for run timestamps in the
// persisted picks, e.g. "Oct-02-2025 14:05".
const RunTimeLayout = "Jan-02-2006 15:04"

// IndiaLocation is the timezone for Indian markets.
var IndiaLocation *time.Location

func init() {
	var err error
	IndiaLocation, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback to UTC+5:30
		IndiaLocation = time.FixedZone("IST", 5*60*60+30*60)
	}
}

// RunTimestamp returns the current time in the market timezone, truncated to
// the minute to match the persisted layout.
func RunTimestamp() time.Time {
	return time.Now().In(IndiaLocation).Truncate(time.Minute)
}

// FormatRunTime renders a run timestamp in the persisted layout.
func FormatRunTime(t time.Time) string {
	return t.In(IndiaLocation).Format(RunTimeLayout)
}

// IsMarketOpen reports whether the Indian equity market is in its regular
// session (9:15-15:30 IST on weekdays). Used only to warn about off-hours
// runs; it never blocks a run.
func IsMarketOpen(now time.Time) bool {
	now = now.In(IndiaLocation)
	if now.Weekday() == time.Saturday || now.Weekday() == time.Sunday {
		return false
	}
	minutes := now.Hour()*60 + now.Minute()
	return minutes >= 555 && minutes < 930
}
