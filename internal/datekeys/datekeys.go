// Package datekeys derives leaderboard scope keys from timestamps.
// All keys are computed in UTC so that every player rolls over at the
// same moment regardless of local timezone.
package datekeys

import (
	"fmt"
	"time"
)

// Date returns the calendar-day scope key (YYYY-MM-DD) for t in UTC
func Date(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Week returns the ISO-week scope key (YYYY-Www) for t in UTC
func Week(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// ParseDate parses a calendar-day scope key back into a UTC time
func ParseDate(key string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", key, time.UTC)
}

// NextMidnight returns the next UTC midnight after t
func NextMidnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
}
