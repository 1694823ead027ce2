package types

import (
	"fmt"
	"time"
)

// DateKeyLayout is the calendar-day key format. Keys compare correctly as
// plain strings, which the period filters rely on.
const DateKeyLayout = "2006-01-02"

const monthKeyLayout = "2006-01"

// DateKey formats a timestamp as its calendar-day key.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// MonthKey formats a timestamp as its calendar-month key (YYYY-MM).
func MonthKey(t time.Time) string {
	return t.Format(monthKeyLayout)
}

// ParseDateKey parses a calendar-day key.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(DateKeyLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t, nil
}

// DaysInMonth returns the number of calendar days in the month containing t.
func DaysInMonth(t time.Time) int {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1).Day()
}

// DaysOfMonth lists every date key in the month identified by monthKey
// (YYYY-MM), in calendar order.
func DaysOfMonth(monthKey string) ([]string, error) {
	first, err := time.Parse(monthKeyLayout, monthKey)
	if err != nil {
		return nil, fmt.Errorf("invalid month key %q: %w", monthKey, err)
	}
	days := make([]string, 0, 31)
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		days = append(days, DateKey(d))
	}
	return days, nil
}

// Noon pins a timestamp to 12:00 UTC on its calendar day. Whole-day
// elapsed-time math uses noon anchors so DST shifts can never produce an
// off-by-one day.
func Noon(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
}

// WholeDaysBetween counts whole days from a to b using noon anchors.
func WholeDaysBetween(a, b time.Time) int {
	return int(Noon(b).Sub(Noon(a)).Hours() / 24)
}
