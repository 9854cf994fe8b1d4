package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsBusinessDay(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected bool
	}{
		{"monday", Date(2024, time.March, 4), true},
		{"wednesday", Date(2024, time.March, 6), true},
		{"friday", Date(2024, time.March, 1), true},
		{"saturday", Date(2024, time.March, 2), false},
		{"sunday", Date(2024, time.March, 3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsBusinessDay(tt.date))
		})
	}
}

func TestNextBusinessDay(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected time.Time
	}{
		{"monday to tuesday", Date(2024, time.March, 4), Date(2024, time.March, 5)},
		{"thursday to friday", Date(2024, time.February, 29), Date(2024, time.March, 1)},
		{"friday skips weekend", Date(2024, time.March, 1), Date(2024, time.March, 4)},
		{"saturday to monday", Date(2024, time.March, 2), Date(2024, time.March, 4)},
		{"sunday to monday", Date(2024, time.March, 3), Date(2024, time.March, 4)},
		{"year boundary", Date(2023, time.December, 29), Date(2024, time.January, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextBusinessDay(tt.date))
		})
	}
}

// NextBusinessDay must always move strictly forward onto a business day,
// regardless of the starting weekday.
func TestNextBusinessDayAlwaysAdvances(t *testing.T) {
	d := Date(2024, time.January, 1)
	for i := 0; i < 60; i++ {
		next := NextBusinessDay(d)
		assert.True(t, next.After(d), "next business day after %s must be later", d.Format("2006-01-02"))
		assert.True(t, IsBusinessDay(next))
		d = d.AddDate(0, 0, 1)
	}
}

func TestFirstBusinessDayOfMonth(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    time.Month
		expected time.Time
	}{
		{"first is friday", 2024, time.March, Date(2024, time.March, 1)},
		{"first is monday", 2024, time.April, Date(2024, time.April, 1)},
		{"first is saturday", 2024, time.June, Date(2024, time.June, 3)},
		{"first is sunday", 2024, time.September, Date(2024, time.September, 2)},
		{"first is thursday", 2024, time.February, Date(2024, time.February, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FirstBusinessDayOfMonth(tt.year, tt.month))
		})
	}
}

func TestDateOf(t *testing.T) {
	ts := time.Date(2024, time.March, 6, 14, 30, 45, 123, time.UTC)
	assert.Equal(t, Date(2024, time.March, 6), DateOf(ts))
}
