package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Frequency is the cadence on which a reconciliation recurs
type Frequency string

const (
	FrequencyDaily   Frequency = "DAILY"
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
)

// Valid reports whether f is a known frequency
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// Priority of a reconciliation (display/sorting concern only)
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Valid reports whether p is a known priority
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Status is the stored lifecycle state of a reconciliation.
// Overdue is never stored: it is derived from status + due date at read time.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
)

// Reconciliation is one recurring reconciliation task in the domain layer.
// DueDate is always a business day, normalized to midnight UTC.
type Reconciliation struct {
	ID              uint
	Name            string
	Description     string
	Frequency       Frequency
	Priority        Priority
	SourceSystem    string
	TargetSystem    string
	AssigneeID      *uint
	DueDate         time.Time
	Status          Status
	LastCompletedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CompletionRecord is the immutable log entry for one completion event.
// It references its reconciliation but is not owned by it: records survive
// reset and even deletion of the reconciliation.
type CompletionRecord struct {
	ID               uint
	ReconciliationID uint
	CompletedBy      uint
	CompletedAt      time.Time
	ItemsReconciled  int
	ExceptionsFound  int
	Notes            string
}

// User represents a user in the domain layer
type User struct {
	ID        uint
	Username  string
	Name      string
	Role      Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TeamMember is an assignee for reconciliation work. The scheduling core
// treats the reference as opaque; the registry exists for assignment and
// workload views.
type TeamMember struct {
	ID        uint
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
}
