package util

import "time"

// DateLayout is the calendar date format used by the forecast APIs and exports.
const DateLayout = "2006-01-02"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// DateUTC truncates t to midnight UTC of the same calendar day.
func DateUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
