package cache

import "time"

// settlementHour is the New York hour after which daily bars are final.
const settlementHour = 17

// TimeUntilNext returns the duration from now until the next hour:00 in loc.
func TimeUntilNext(now time.Time, hour int, loc *time.Location) time.Duration {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
	if !local.Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(local)
}

// TimeUntilSettlement returns the time left until daily bars settle after the
// New York close. Falls back to UTC when tzdata is unavailable.
func TimeUntilSettlement() time.Duration {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}
	return TimeUntilNext(time.Now(), settlementHour, loc)
}
