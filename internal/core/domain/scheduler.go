package domain

import (
	"time"

	"recontrack/internal/core/schedule"
)

// NextDue computes the next due date for a frequency from a reference date.
// Each frequency anchors to a calendar boundary (next day, next Monday,
// next month) rather than a fixed offset, so completing early or late never
// drifts the long-run cadence. The reference is "today" for initial
// scheduling and the completion reference for rescheduling at reset.
func NextDue(f Frequency, ref time.Time) time.Time {
	ref = schedule.DateOf(ref)

	switch f {
	case FrequencyDaily:
		return schedule.NextBusinessDay(ref)

	case FrequencyWeekly:
		// Monday of the week after the one containing ref (weeks run
		// Mon-Sun). A Monday reference rolls a full week forward.
		days := (8 - int(ref.Weekday())) % 7
		if days == 0 {
			days = 7
		}
		monday := ref.AddDate(0, 0, days)
		if !schedule.IsBusinessDay(monday) {
			monday = schedule.NextBusinessDay(monday)
		}
		return monday

	case FrequencyMonthly:
		// time.Date normalizes month 13 into January of the next year.
		first := time.Date(ref.Year(), ref.Month()+1, 1, 0, 0, 0, 0, time.UTC)
		return schedule.FirstBusinessDayOfMonth(first.Year(), first.Month())
	}

	return ref
}
