package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	in := CreateInput{
		Name:      "Bank vs GL cash",
		Frequency: FrequencyDaily,
	}

	// Daily created on Friday 2024-03-01 is due Monday 2024-03-04.
	rec, err := Create(in, date(2024, time.March, 1), RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, rec.Status)
	assert.Equal(t, date(2024, time.March, 4), rec.DueDate)
	assert.Equal(t, PriorityMedium, rec.Priority)
	assert.Nil(t, rec.LastCompletedAt)
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name     string
		in       CreateInput
		role     Role
		expected error
	}{
		{"user denied", CreateInput{Name: "x", Frequency: FrequencyDaily}, RoleUser, ErrPermissionDenied},
		{"unknown role denied", CreateInput{Name: "x", Frequency: FrequencyDaily}, Role("GUEST"), ErrPermissionDenied},
		{"blank name", CreateInput{Name: "   ", Frequency: FrequencyDaily}, RoleAdmin, ErrInvalidInput},
		{"bad frequency", CreateInput{Name: "x", Frequency: Frequency("HOURLY")}, RoleAdmin, ErrInvalidInput},
		{"bad priority", CreateInput{Name: "x", Frequency: FrequencyDaily, Priority: Priority("URGENT")}, RoleAdmin, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Create(tt.in, date(2024, time.March, 1), tt.role)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestComplete(t *testing.T) {
	rec := Reconciliation{
		ID:        7,
		Name:      "Custody positions",
		Frequency: FrequencyWeekly,
		DueDate:   date(2024, time.March, 4),
		Status:    StatusPending,
	}
	now := time.Date(2024, time.March, 6, 10, 15, 0, 0, time.UTC)

	in := CompleteInput{ItemsReconciled: 120, ExceptionsFound: 2, Notes: "two stale trades", CompletedBy: 42}
	got, record, err := Complete(rec, in, now, RoleUser)
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, got.Status)
	require.NotNil(t, got.LastCompletedAt)
	assert.Equal(t, now, *got.LastCompletedAt)
	// Due date is preserved for audit; rollover happens only at reset.
	assert.Equal(t, date(2024, time.March, 4), got.DueDate)

	assert.Equal(t, uint(7), record.ReconciliationID)
	assert.Equal(t, uint(42), record.CompletedBy)
	assert.Equal(t, now, record.CompletedAt)
	assert.Equal(t, 120, record.ItemsReconciled)
	assert.Equal(t, 2, record.ExceptionsFound)

	// The input snapshot is untouched.
	assert.Equal(t, StatusPending, rec.Status)
}

func TestCompleteFailures(t *testing.T) {
	pending := Reconciliation{ID: 1, Status: StatusPending, Frequency: FrequencyDaily, DueDate: date(2024, time.March, 4)}
	now := date(2024, time.March, 5)

	t.Run("double completion", func(t *testing.T) {
		done, _, err := Complete(pending, CompleteInput{CompletedBy: 1}, now, RoleUser)
		require.NoError(t, err)
		_, _, err = Complete(done, CompleteInput{CompletedBy: 1}, now, RoleUser)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("negative items", func(t *testing.T) {
		_, _, err := Complete(pending, CompleteInput{ItemsReconciled: -1, CompletedBy: 1}, now, RoleUser)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("negative exceptions", func(t *testing.T) {
		_, _, err := Complete(pending, CompleteInput{ExceptionsFound: -3, CompletedBy: 1}, now, RoleUser)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing completer", func(t *testing.T) {
		_, _, err := Complete(pending, CompleteInput{}, now, RoleUser)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, _, err := Complete(pending, CompleteInput{CompletedBy: 1}, now, Role(""))
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}

// Weekly cycle: due Monday 2024-03-04, completed by a user on Wednesday
// 2024-03-06, then reset by an admin. The new due date anchors on the
// completion date and lands on Monday 2024-03-11.
func TestCompleteThenReset(t *testing.T) {
	rec := Reconciliation{
		ID:        3,
		Frequency: FrequencyWeekly,
		DueDate:   date(2024, time.March, 4),
		Status:    StatusPending,
	}
	completedAt := time.Date(2024, time.March, 6, 16, 0, 0, 0, time.UTC)

	done, _, err := Complete(rec, CompleteInput{ItemsReconciled: 10, CompletedBy: 9}, completedAt, RoleUser)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.March, 4), done.DueDate)

	next, err := Reset(done, RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, next.Status)
	assert.Equal(t, date(2024, time.March, 11), next.DueDate)
}

// A late completion must not schedule the next cycle into the past: the
// reset reference is the later of the completion date and the old due date.
func TestResetUsesLaterReference(t *testing.T) {
	completedAt := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
	rec := Reconciliation{
		Frequency:       FrequencyDaily,
		DueDate:         date(2024, time.March, 8),
		Status:          StatusCompleted,
		LastCompletedAt: &completedAt,
	}

	// Completed early (03-04) against a due date of Friday 03-08: the due
	// date wins and the next daily cycle lands on Monday 03-11.
	next, err := Reset(rec, RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.March, 11), next.DueDate)
}

func TestResetFailures(t *testing.T) {
	completed := Reconciliation{Frequency: FrequencyDaily, DueDate: date(2024, time.March, 4), Status: StatusCompleted}
	pending := Reconciliation{Frequency: FrequencyDaily, DueDate: date(2024, time.March, 4), Status: StatusPending}

	t.Run("user denied", func(t *testing.T) {
		_, err := Reset(completed, RoleUser)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("nothing to reset while pending", func(t *testing.T) {
		_, err := Reset(pending, RoleAdmin)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestEdit(t *testing.T) {
	rec := Reconciliation{
		Name:      "Nostro EUR",
		Frequency: FrequencyDaily,
		Priority:  PriorityMedium,
		DueDate:   date(2024, time.March, 4),
		Status:    StatusPending,
	}
	now := date(2024, time.March, 6)

	t.Run("rename keeps due date", func(t *testing.T) {
		name := "Nostro EUR main"
		got, err := Edit(rec, EditInput{Name: &name}, now, RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, "Nostro EUR main", got.Name)
		assert.Equal(t, date(2024, time.March, 4), got.DueDate)
	})

	t.Run("frequency change recomputes due date", func(t *testing.T) {
		monthly := FrequencyMonthly
		got, err := Edit(rec, EditInput{Frequency: &monthly}, now, RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, FrequencyMonthly, got.Frequency)
		assert.Equal(t, date(2024, time.April, 1), got.DueDate)
	})

	t.Run("same frequency keeps due date", func(t *testing.T) {
		daily := FrequencyDaily
		got, err := Edit(rec, EditInput{Frequency: &daily}, now, RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, date(2024, time.March, 4), got.DueDate)
	})

	t.Run("clearing assignee", func(t *testing.T) {
		id := uint(5)
		withAssignee := rec
		withAssignee.AssigneeID = &id
		var cleared *uint
		got, err := Edit(withAssignee, EditInput{AssigneeID: &cleared}, now, RoleAdmin)
		require.NoError(t, err)
		assert.Nil(t, got.AssigneeID)
	})

	t.Run("user denied", func(t *testing.T) {
		name := "x"
		_, err := Edit(rec, EditInput{Name: &name}, now, RoleUser)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		name := "  "
		_, err := Edit(rec, EditInput{Name: &name}, now, RoleAdmin)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestAuthorizeDelete(t *testing.T) {
	assert.NoError(t, AuthorizeDelete(RoleAdmin))
	assert.ErrorIs(t, AuthorizeDelete(RoleUser), ErrPermissionDenied)
	assert.ErrorIs(t, AuthorizeDelete(Role("")), ErrPermissionDenied)
}
