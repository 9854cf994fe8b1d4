package domain

import (
	"testing"
	"time"

	"recontrack/internal/core/schedule"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return schedule.Date(y, m, d)
}

func TestNextDueDaily(t *testing.T) {
	tests := []struct {
		name     string
		ref      time.Time
		expected time.Time
	}{
		{"monday to tuesday", date(2024, time.March, 4), date(2024, time.March, 5)},
		{"friday skips weekend", date(2024, time.March, 1), date(2024, time.March, 4)},
		{"saturday to monday", date(2024, time.March, 2), date(2024, time.March, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextDue(FrequencyDaily, tt.ref))
		})
	}
}

func TestNextDueWeekly(t *testing.T) {
	tests := []struct {
		name     string
		ref      time.Time
		expected time.Time
	}{
		// Weekly anchors to the Monday of the next calendar week,
		// so a Monday reference rolls a full week forward.
		{"monday rolls a full week", date(2024, time.March, 4), date(2024, time.March, 11)},
		{"wednesday", date(2024, time.March, 6), date(2024, time.March, 11)},
		{"friday", date(2024, time.March, 1), date(2024, time.March, 4)},
		{"saturday", date(2024, time.March, 2), date(2024, time.March, 4)},
		{"sunday closes its week", date(2024, time.March, 3), date(2024, time.March, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDue(FrequencyWeekly, tt.ref)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, time.Monday, got.Weekday())
		})
	}
}

func TestNextDueMonthly(t *testing.T) {
	tests := []struct {
		name     string
		ref      time.Time
		expected time.Time
	}{
		{"mid march to april", date(2024, time.March, 15), date(2024, time.April, 1)},
		{"may to june first is saturday", date(2024, time.May, 20), date(2024, time.June, 3)},
		{"august to september first is sunday", date(2024, time.August, 30), date(2024, time.September, 2)},
		{"december wraps the year", date(2024, time.December, 10), date(2025, time.January, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDue(FrequencyMonthly, tt.ref)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// Monthly due dates always land in the month after the reference month and
// on the earliest business day of that month.
func TestNextDueMonthlyIsEarliestBusinessDay(t *testing.T) {
	ref := date(2024, time.January, 1)
	for i := 0; i < 365; i++ {
		got := NextDue(FrequencyMonthly, ref)
		next := time.Date(ref.Year(), ref.Month()+1, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, next.Month(), got.Month())
		assert.Equal(t, next.Year(), got.Year())
		assert.Equal(t, schedule.FirstBusinessDayOfMonth(next.Year(), next.Month()), got)
		ref = ref.AddDate(0, 0, 1)
	}
}

func TestNextDueIsAlwaysBusinessDayAhead(t *testing.T) {
	ref := date(2024, time.February, 1)
	for i := 0; i < 90; i++ {
		for _, f := range []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly} {
			got := NextDue(f, ref)
			assert.True(t, got.After(ref), "%s from %s must move forward", f, ref.Format("2006-01-02"))
			assert.True(t, schedule.IsBusinessDay(got))
		}
		ref = ref.AddDate(0, 0, 1)
	}
}

// A reference with a time-of-day component must still land on a pure date.
func TestNextDueNormalizesReference(t *testing.T) {
	ref := time.Date(2024, time.March, 1, 17, 45, 0, 0, time.UTC)
	assert.Equal(t, date(2024, time.March, 4), NextDue(FrequencyDaily, ref))
}
