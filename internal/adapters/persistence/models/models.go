package models

import (
	"time"

	"gorm.io/gorm"

	"recontrack/internal/core/domain"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'USER'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Reconciliation Tables
// ============================================================

// TeamMember represents team_members table (assignee registry)
type TeamMember struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;size:120;not null" json:"email"`
	Role      string         `gorm:"size:50;not null" json:"role"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (TeamMember) TableName() string {
	return "team_members"
}

// Reconciliation represents reconciliations table. Overdue is never a
// column: it is derived from status + due_date at read time.
type Reconciliation struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"size:200;not null" json:"name"`
	Description     string         `gorm:"type:text" json:"description"`
	Frequency       string         `gorm:"size:20;not null;index" json:"frequency"`
	Priority        string         `gorm:"size:20;default:'MEDIUM'" json:"priority"`
	SourceSystem    string         `gorm:"size:100" json:"source_system"`
	TargetSystem    string         `gorm:"size:100" json:"target_system"`
	AssigneeID      *uint          `gorm:"index" json:"assignee_id"`
	DueDate         time.Time      `gorm:"type:date;not null;index" json:"due_date"`
	Status          string         `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	LastCompletedAt *time.Time     `json:"last_completed_at"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Assignee *TeamMember `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
}

func (Reconciliation) TableName() string {
	return "reconciliations"
}

// ToDomain maps the stored row to the core snapshot type.
func (r *Reconciliation) ToDomain() domain.Reconciliation {
	return domain.Reconciliation{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		Frequency:       domain.Frequency(r.Frequency),
		Priority:        domain.Priority(r.Priority),
		SourceSystem:    r.SourceSystem,
		TargetSystem:    r.TargetSystem,
		AssigneeID:      r.AssigneeID,
		DueDate:         r.DueDate,
		Status:          domain.Status(r.Status),
		LastCompletedAt: r.LastCompletedAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// ApplyDomain writes a core snapshot back onto the stored row.
func (r *Reconciliation) ApplyDomain(d domain.Reconciliation) {
	r.Name = d.Name
	r.Description = d.Description
	r.Frequency = string(d.Frequency)
	r.Priority = string(d.Priority)
	r.SourceSystem = d.SourceSystem
	r.TargetSystem = d.TargetSystem
	r.AssigneeID = d.AssigneeID
	r.DueDate = d.DueDate
	r.Status = string(d.Status)
	r.LastCompletedAt = d.LastCompletedAt
}

// ReconciliationResponse DTO. IsOverdue is computed against the evaluation
// date at read time, never stored.
type ReconciliationResponse struct {
	ID              uint       `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	Frequency       string     `json:"frequency"`
	Priority        string     `json:"priority"`
	SourceSystem    string     `json:"source_system,omitempty"`
	TargetSystem    string     `json:"target_system,omitempty"`
	AssigneeID      *uint      `json:"assignee_id"`
	AssigneeName    string     `json:"assignee_name,omitempty"`
	DueDate         string     `json:"due_date"`
	Status          string     `json:"status"`
	IsOverdue       bool       `json:"is_overdue"`
	LastCompletedAt *time.Time `json:"last_completed_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ToResponse builds the DTO, deriving the overdue flag from today.
func (r *Reconciliation) ToResponse(today time.Time) *ReconciliationResponse {
	resp := &ReconciliationResponse{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		Frequency:       r.Frequency,
		Priority:        r.Priority,
		SourceSystem:    r.SourceSystem,
		TargetSystem:    r.TargetSystem,
		AssigneeID:      r.AssigneeID,
		DueDate:         r.DueDate.Format("2006-01-02"),
		Status:          r.Status,
		IsOverdue:       domain.IsOverdue(r.ToDomain(), today),
		LastCompletedAt: r.LastCompletedAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}

	if r.Assignee != nil {
		resp.AssigneeName = r.Assignee.Name
	}

	return resp
}

// CompletionRecord represents completion_records table. Rows are append
// only and deliberately carry no FK constraint to reconciliations: history
// must survive deletion of the reconciliation it documents.
type CompletionRecord struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ReconciliationID uint      `gorm:"not null;index" json:"reconciliation_id"`
	CompletedBy      uint      `gorm:"not null" json:"completed_by"`
	CompletedAt      time.Time `gorm:"not null" json:"completed_at"`
	ItemsReconciled  int       `gorm:"not null;default:0" json:"items_reconciled"`
	ExceptionsFound  int       `gorm:"not null;default:0" json:"exceptions_found"`
	Notes            string    `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Completer *User `gorm:"foreignKey:CompletedBy" json:"completer,omitempty"`
}

func (CompletionRecord) TableName() string {
	return "completion_records"
}

// FromDomain maps a core completion record onto a new row.
func CompletionRecordFromDomain(d domain.CompletionRecord) *CompletionRecord {
	return &CompletionRecord{
		ReconciliationID: d.ReconciliationID,
		CompletedBy:      d.CompletedBy,
		CompletedAt:      d.CompletedAt,
		ItemsReconciled:  d.ItemsReconciled,
		ExceptionsFound:  d.ExceptionsFound,
		Notes:            d.Notes,
	}
}

// CompletionRecordResponse DTO
type CompletionRecordResponse struct {
	ID               uint      `json:"id"`
	ReconciliationID uint      `json:"reconciliation_id"`
	CompletedBy      uint      `json:"completed_by"`
	CompleterName    string    `json:"completer_name,omitempty"`
	CompletedAt      time.Time `json:"completed_at"`
	ItemsReconciled  int       `json:"items_reconciled"`
	ExceptionsFound  int       `json:"exceptions_found"`
	Notes            string    `json:"notes,omitempty"`
}

func (cr *CompletionRecord) ToResponse() *CompletionRecordResponse {
	resp := &CompletionRecordResponse{
		ID:               cr.ID,
		ReconciliationID: cr.ReconciliationID,
		CompletedBy:      cr.CompletedBy,
		CompletedAt:      cr.CompletedAt,
		ItemsReconciled:  cr.ItemsReconciled,
		ExceptionsFound:  cr.ExceptionsFound,
		Notes:            cr.Notes,
	}

	if cr.Completer != nil {
		resp.CompleterName = cr.Completer.Name
	}

	return resp
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&TeamMember{},
		&Reconciliation{},
		&CompletionRecord{},
	)
}
