package services

import (
	"context"
	"errors"
	"time"

	"recontrack/internal/adapters/persistence/models"
	"recontrack/internal/adapters/persistence/repositories"
	"recontrack/internal/core/domain"
	"recontrack/internal/core/schedule"
	"recontrack/internal/pkg/logger"

	"gorm.io/gorm"
)

// ReconciliationService orchestrates the reconciliation lifecycle. All
// transition rules live in the domain package; this layer supplies the
// clock, loads and stores snapshots, and keeps completion history.
type ReconciliationService struct {
	reconRepo      repositories.ReconciliationRepository
	completionRepo repositories.CompletionRepository
	memberRepo     repositories.MemberRepository
	now            func() time.Time
}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService(
	reconRepo repositories.ReconciliationRepository,
	completionRepo repositories.CompletionRepository,
	memberRepo repositories.MemberRepository,
) *ReconciliationService {
	return &ReconciliationService{
		reconRepo:      reconRepo,
		completionRepo: completionRepo,
		memberRepo:     memberRepo,
		now:            time.Now,
	}
}

// CreateReconciliationInput represents reconciliation creation input
type CreateReconciliationInput struct {
	Name         string `json:"name" validate:"required,max=200"`
	Description  string `json:"description"`
	Frequency    string `json:"frequency" validate:"required,oneof=DAILY WEEKLY MONTHLY"`
	Priority     string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	SourceSystem string `json:"source_system" validate:"max=100"`
	TargetSystem string `json:"target_system" validate:"max=100"`
	AssigneeID   *uint  `json:"assignee_id"`
}

// UpdateReconciliationInput represents reconciliation update input.
// ClearAssignee takes precedence over AssigneeID.
type UpdateReconciliationInput struct {
	Name          *string `json:"name" validate:"omitempty,max=200"`
	Description   *string `json:"description"`
	Frequency     *string `json:"frequency" validate:"omitempty,oneof=DAILY WEEKLY MONTHLY"`
	Priority      *string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	SourceSystem  *string `json:"source_system" validate:"omitempty,max=100"`
	TargetSystem  *string `json:"target_system" validate:"omitempty,max=100"`
	AssigneeID    *uint   `json:"assignee_id"`
	ClearAssignee bool    `json:"clear_assignee"`
}

// CompleteReconciliationInput represents a completion report
type CompleteReconciliationInput struct {
	ItemsReconciled int    `json:"items_reconciled" validate:"gte=0"`
	ExceptionsFound int    `json:"exceptions_found" validate:"gte=0"`
	Notes           string `json:"notes"`
}

// ListFilter narrows List results; zero values mean no filter
type ListFilter struct {
	Status      string
	Frequency   string
	Priority    string
	AssigneeID  *uint
	OverdueOnly bool
}

// today returns the service clock truncated to a calendar date
func (s *ReconciliationService) today() time.Time {
	return schedule.DateOf(s.now())
}

func (s *ReconciliationService) checkAssignee(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	if _, err := s.memberRepo.GetByID(ctx, *id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}
	return nil
}

// Create creates a new reconciliation with its first due date. Admin only.
func (s *ReconciliationService) Create(ctx context.Context, role domain.Role, input *CreateReconciliationInput) (*models.Reconciliation, error) {
	if err := s.checkAssignee(ctx, input.AssigneeID); err != nil {
		return nil, err
	}

	rec, err := domain.Create(domain.CreateInput{
		Name:         input.Name,
		Description:  input.Description,
		Frequency:    domain.Frequency(input.Frequency),
		Priority:     domain.Priority(input.Priority),
		SourceSystem: input.SourceSystem,
		TargetSystem: input.TargetSystem,
		AssigneeID:   input.AssigneeID,
	}, s.today(), role)
	if err != nil {
		return nil, err
	}

	row := &models.Reconciliation{}
	row.ApplyDomain(rec)
	if err := s.reconRepo.Create(ctx, row); err != nil {
		return nil, err
	}

	logger.Log.WithFields(map[string]interface{}{
		"reconciliation": row.Name,
		"due_date":       row.DueDate.Format("2006-01-02"),
	}).Info("reconciliation created")

	return s.GetByID(ctx, row.ID)
}

// GetByID gets a reconciliation by ID
func (s *ReconciliationService) GetByID(ctx context.Context, id uint) (*models.Reconciliation, error) {
	row, err := s.reconRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return row, nil
}

// List lists reconciliations with filters and pagination
func (s *ReconciliationService) List(ctx context.Context, filter ListFilter, offset, limit int) ([]*models.Reconciliation, int64, error) {
	if filter.OverdueOnly {
		rows, err := s.reconRepo.ListOverdue(ctx, s.today())
		if err != nil {
			return nil, 0, err
		}
		return rows, int64(len(rows)), nil
	}

	return s.reconRepo.List(ctx, repositories.ReconciliationFilter{
		Status:     filter.Status,
		Frequency:  filter.Frequency,
		Priority:   filter.Priority,
		AssigneeID: filter.AssigneeID,
	}, offset, limit)
}

// ListOverdue lists pending reconciliations past their due date
func (s *ReconciliationService) ListOverdue(ctx context.Context) ([]*models.Reconciliation, error) {
	return s.reconRepo.ListOverdue(ctx, s.today())
}

// ListDueToday lists pending reconciliations due on the current date
func (s *ReconciliationService) ListDueToday(ctx context.Context) ([]*models.Reconciliation, error) {
	return s.reconRepo.ListDueOn(ctx, s.today())
}

// Update edits descriptive fields. A frequency change recomputes the due
// date from today. Admin only.
func (s *ReconciliationService) Update(ctx context.Context, role domain.Role, id uint, input *UpdateReconciliationInput) (*models.Reconciliation, error) {
	row, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	edit := domain.EditInput{
		Name:         input.Name,
		Description:  input.Description,
		SourceSystem: input.SourceSystem,
		TargetSystem: input.TargetSystem,
	}
	if input.Priority != nil {
		p := domain.Priority(*input.Priority)
		edit.Priority = &p
	}
	if input.Frequency != nil {
		f := domain.Frequency(*input.Frequency)
		edit.Frequency = &f
	}
	if input.ClearAssignee {
		var none *uint
		edit.AssigneeID = &none
	} else if input.AssigneeID != nil {
		if err := s.checkAssignee(ctx, input.AssigneeID); err != nil {
			return nil, err
		}
		edit.AssigneeID = &input.AssigneeID
	}

	next, err := domain.Edit(row.ToDomain(), edit, s.today(), role)
	if err != nil {
		return nil, err
	}

	row.ApplyDomain(next)
	if err := s.reconRepo.Update(ctx, row); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// Complete marks a pending reconciliation completed and appends the
// completion record. The due date is left as is until an admin reset.
func (s *ReconciliationService) Complete(ctx context.Context, role domain.Role, id, completedBy uint, input *CompleteReconciliationInput) (*models.Reconciliation, *models.CompletionRecord, error) {
	row, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	next, record, err := domain.Complete(row.ToDomain(), domain.CompleteInput{
		ItemsReconciled: input.ItemsReconciled,
		ExceptionsFound: input.ExceptionsFound,
		Notes:           input.Notes,
		CompletedBy:     completedBy,
	}, s.now(), role)
	if err != nil {
		return nil, nil, err
	}

	row.ApplyDomain(next)
	if err := s.reconRepo.Update(ctx, row); err != nil {
		return nil, nil, err
	}

	recordRow := models.CompletionRecordFromDomain(record)
	if err := s.completionRepo.Create(ctx, recordRow); err != nil {
		return nil, nil, err
	}

	logger.Log.WithFields(map[string]interface{}{
		"reconciliation": row.Name,
		"completed_by":   completedBy,
	}).Info("reconciliation completed")

	return row, recordRow, nil
}

// Reset returns a completed reconciliation to pending with the due date
// rolled forward to the next cycle. Admin only.
func (s *ReconciliationService) Reset(ctx context.Context, role domain.Role, id uint) (*models.Reconciliation, error) {
	row, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := domain.Reset(row.ToDomain(), role)
	if err != nil {
		return nil, err
	}

	row.ApplyDomain(next)
	if err := s.reconRepo.Update(ctx, row); err != nil {
		return nil, err
	}

	logger.Log.WithFields(map[string]interface{}{
		"reconciliation": row.Name,
		"due_date":       row.DueDate.Format("2006-01-02"),
	}).Info("reconciliation reset for next cycle")

	return row, nil
}

// Delete removes a reconciliation. Its completion records are kept as an
// audit trail. Admin only.
func (s *ReconciliationService) Delete(ctx context.Context, role domain.Role, id uint) error {
	if err := domain.AuthorizeDelete(role); err != nil {
		return err
	}
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.reconRepo.Delete(ctx, id)
}

// History lists completion records for a reconciliation, newest first.
// It works for deleted reconciliations too since records outlive them.
func (s *ReconciliationService) History(ctx context.Context, id uint, offset, limit int) ([]*models.CompletionRecord, int64, error) {
	return s.completionRepo.ListByReconciliation(ctx, id, offset, limit)
}
