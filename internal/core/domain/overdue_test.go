package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsOverdue(t *testing.T) {
	rec := Reconciliation{
		Frequency: FrequencyMonthly,
		DueDate:   date(2024, time.March, 1),
		Status:    StatusPending,
	}

	assert.False(t, IsOverdue(rec, date(2024, time.February, 29)))
	assert.False(t, IsOverdue(rec, date(2024, time.March, 1)), "due today is not overdue")
	assert.True(t, IsOverdue(rec, date(2024, time.March, 15)))
}

func TestIsDueOn(t *testing.T) {
	rec := Reconciliation{DueDate: date(2024, time.March, 4), Status: StatusPending}
	assert.True(t, IsDueOn(rec, date(2024, time.March, 4)))
	assert.False(t, IsDueOn(rec, date(2024, time.March, 5)))

	rec.Status = StatusCompleted
	assert.False(t, IsDueOn(rec, date(2024, time.March, 4)))
}

// Completing removes an item from the overdue set even though the due date
// itself never moves.
func TestOverdueExcludesCompleted(t *testing.T) {
	rec := Reconciliation{
		ID:        11,
		Frequency: FrequencyMonthly,
		DueDate:   date(2024, time.March, 1),
		Status:    StatusPending,
	}
	today := date(2024, time.March, 15)

	assert.Contains(t, OverdueIDs([]Reconciliation{rec}, today), uint(11))

	done, _, err := Complete(rec, CompleteInput{ItemsReconciled: 5, CompletedBy: 1}, today, RoleUser)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.March, 1), done.DueDate)
	assert.Empty(t, OverdueIDs([]Reconciliation{done}, today))
}

func TestOverdueIDsIsPure(t *testing.T) {
	recs := []Reconciliation{
		{ID: 1, DueDate: date(2024, time.March, 1), Status: StatusPending},
		{ID: 2, DueDate: date(2024, time.March, 20), Status: StatusPending},
		{ID: 3, DueDate: date(2024, time.February, 1), Status: StatusCompleted},
		{ID: 4, DueDate: date(2024, time.February, 15), Status: StatusPending},
	}
	today := date(2024, time.March, 15)

	first := OverdueIDs(recs, today)
	second := OverdueIDs(recs, today)

	assert.Equal(t, []uint{1, 4}, first)
	assert.Equal(t, first, second)
	assert.Equal(t, StatusPending, recs[0].Status, "evaluation never mutates the snapshot")
}
