package domain

import (
	"time"

	"recontrack/internal/core/schedule"
)

// Overdue is a derived read-time view, re-evaluated on every query so it
// can never go stale across a day boundary. Nothing here mutates state.

// IsOverdue reports whether rec is pending with a due date before today.
func IsOverdue(rec Reconciliation, today time.Time) bool {
	return rec.Status == StatusPending && schedule.DateOf(rec.DueDate).Before(schedule.DateOf(today))
}

// IsDueOn reports whether rec is pending and due exactly on the given day.
func IsDueOn(rec Reconciliation, day time.Time) bool {
	return rec.Status == StatusPending && schedule.DateOf(rec.DueDate).Equal(schedule.DateOf(day))
}

// OverdueIDs returns the ids of all overdue reconciliations in the
// snapshot, in input order.
func OverdueIDs(recs []Reconciliation, today time.Time) []uint {
	var ids []uint
	for _, rec := range recs {
		if IsOverdue(rec, today) {
			ids = append(ids, rec.ID)
		}
	}
	return ids
}
