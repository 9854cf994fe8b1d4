package schedule

import "time"

// Business-day calendar: Monday-Friday, no holiday exclusions.
// All dates are normalized to midnight UTC so they compare as calendar days.

// DateOf truncates a timestamp to its calendar date (midnight UTC).
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Date builds a normalized calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// IsBusinessDay reports whether d falls on Monday through Friday.
func IsBusinessDay(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// NextBusinessDay returns the smallest business day strictly after d.
func NextBusinessDay(d time.Time) time.Time {
	next := DateOf(d).AddDate(0, 0, 1)
	for !IsBusinessDay(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// FirstBusinessDayOfMonth returns the smallest business day on or after
// the first calendar day of the given month.
func FirstBusinessDayOfMonth(year int, month time.Month) time.Time {
	d := Date(year, month, 1)
	for !IsBusinessDay(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}
