package domain

import (
	"strings"
	"time"

	"recontrack/internal/core/schedule"
)

// Lifecycle transitions. Each function takes the current snapshot plus the
// acting role, validates before touching anything, and returns the next
// snapshot. Persisting the result atomically is the caller's job; the core
// never does I/O and never partially applies a transition.

// CreateInput carries the fields for a new reconciliation.
type CreateInput struct {
	Name         string
	Description  string
	Frequency    Frequency
	Priority     Priority
	SourceSystem string
	TargetSystem string
	AssigneeID   *uint
}

// Create builds a new Pending reconciliation with its first due date
// computed from startRef. Admin only.
func Create(in CreateInput, startRef time.Time, role Role) (Reconciliation, error) {
	if err := authorize(role, ActionCreate); err != nil {
		return Reconciliation{}, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return Reconciliation{}, ErrInvalidInput
	}
	if !in.Frequency.Valid() {
		return Reconciliation{}, ErrInvalidInput
	}
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if !in.Priority.Valid() {
		return Reconciliation{}, ErrInvalidInput
	}

	return Reconciliation{
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Frequency:    in.Frequency,
		Priority:     in.Priority,
		SourceSystem: in.SourceSystem,
		TargetSystem: in.TargetSystem,
		AssigneeID:   in.AssigneeID,
		DueDate:      NextDue(in.Frequency, startRef),
		Status:       StatusPending,
	}, nil
}

// CompleteInput carries the completion report fields.
type CompleteInput struct {
	ItemsReconciled int
	ExceptionsFound int
	Notes           string
	CompletedBy     uint
}

// Complete marks a Pending reconciliation Completed and produces its
// immutable CompletionRecord. The due date is deliberately left untouched:
// the record is audited against the due date it was completed under, and
// rollover to the next cycle happens only at Reset.
func Complete(rec Reconciliation, in CompleteInput, now time.Time, role Role) (Reconciliation, CompletionRecord, error) {
	if err := authorize(role, ActionComplete); err != nil {
		return Reconciliation{}, CompletionRecord{}, err
	}
	if rec.Status != StatusPending {
		return Reconciliation{}, CompletionRecord{}, ErrInvalidTransition
	}
	if in.ItemsReconciled < 0 || in.ExceptionsFound < 0 {
		return Reconciliation{}, CompletionRecord{}, ErrInvalidInput
	}
	if in.CompletedBy == 0 {
		return Reconciliation{}, CompletionRecord{}, ErrInvalidInput
	}

	completedAt := now
	rec.Status = StatusCompleted
	rec.LastCompletedAt = &completedAt

	record := CompletionRecord{
		ReconciliationID: rec.ID,
		CompletedBy:      in.CompletedBy,
		CompletedAt:      completedAt,
		ItemsReconciled:  in.ItemsReconciled,
		ExceptionsFound:  in.ExceptionsFound,
		Notes:            in.Notes,
	}

	return rec, record, nil
}

// Reset returns a Completed reconciliation to Pending for its next cycle.
// The new due date is computed from the later of the completion date and
// the old due date, so the next cycle never lands in the past relative to
// when the work was actually done. Admin only.
func Reset(rec Reconciliation, role Role) (Reconciliation, error) {
	if err := authorize(role, ActionReset); err != nil {
		return Reconciliation{}, err
	}
	if rec.Status != StatusCompleted {
		return Reconciliation{}, ErrInvalidTransition
	}

	ref := schedule.DateOf(rec.DueDate)
	if rec.LastCompletedAt != nil {
		if completed := schedule.DateOf(*rec.LastCompletedAt); completed.After(ref) {
			ref = completed
		}
	}

	rec.Status = StatusPending
	rec.DueDate = NextDue(rec.Frequency, ref)
	return rec, nil
}

// EditInput carries optional field updates; nil fields are left unchanged.
// Assignee uses a double pointer so an edit can also clear the assignment.
type EditInput struct {
	Name         *string
	Description  *string
	Priority     *Priority
	SourceSystem *string
	TargetSystem *string
	AssigneeID   **uint
	Frequency    *Frequency
}

// Edit mutates the descriptive fields of a reconciliation. Changing the
// frequency recomputes the due date from now so it cannot go stale on the
// old cadence. Admin only.
func Edit(rec Reconciliation, in EditInput, now time.Time, role Role) (Reconciliation, error) {
	if err := authorize(role, ActionEdit); err != nil {
		return Reconciliation{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Reconciliation{}, ErrInvalidInput
		}
		rec.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		rec.Description = *in.Description
	}
	if in.Priority != nil {
		if !in.Priority.Valid() {
			return Reconciliation{}, ErrInvalidInput
		}
		rec.Priority = *in.Priority
	}
	if in.SourceSystem != nil {
		rec.SourceSystem = *in.SourceSystem
	}
	if in.TargetSystem != nil {
		rec.TargetSystem = *in.TargetSystem
	}
	if in.AssigneeID != nil {
		rec.AssigneeID = *in.AssigneeID
	}
	if in.Frequency != nil && *in.Frequency != rec.Frequency {
		if !in.Frequency.Valid() {
			return Reconciliation{}, ErrInvalidInput
		}
		rec.Frequency = *in.Frequency
		rec.DueDate = NextDue(rec.Frequency, now)
	}

	return rec, nil
}

// AuthorizeDelete gates removal of a reconciliation. Deletion itself is a
// storage concern; completion records always survive it.
func AuthorizeDelete(role Role) error {
	return authorize(role, ActionDelete)
}
