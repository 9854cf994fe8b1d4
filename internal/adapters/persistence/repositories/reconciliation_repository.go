package repositories

import (
	"context"
	"time"

	"recontrack/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// reconciliationRepository implements ReconciliationRepository interface
type reconciliationRepository struct {
	db *gorm.DB
}

// NewReconciliationRepository creates a new reconciliation repository
func NewReconciliationRepository(db *gorm.DB) ReconciliationRepository {
	return &reconciliationRepository{db: db}
}

// Create creates a new reconciliation
func (r *reconciliationRepository) Create(ctx context.Context, rec *models.Reconciliation) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// GetByID gets a reconciliation by ID with its assignee preloaded
func (r *reconciliationRepository) GetByID(ctx context.Context, id uint) (*models.Reconciliation, error) {
	var rec models.Reconciliation
	err := r.db.WithContext(ctx).Preload("Assignee").Where("id = ?", id).First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update updates a reconciliation
func (r *reconciliationRepository) Update(ctx context.Context, rec *models.Reconciliation) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

// Delete soft deletes a reconciliation. Completion records are kept.
func (r *reconciliationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Reconciliation{}, id).Error
}

func applyFilter(q *gorm.DB, filter ReconciliationFilter) *gorm.DB {
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Frequency != "" {
		q = q.Where("frequency = ?", filter.Frequency)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}
	if filter.AssigneeID != nil {
		q = q.Where("assignee_id = ?", *filter.AssigneeID)
	}
	return q
}

// List lists reconciliations with filters and pagination, due date first
func (r *reconciliationRepository) List(ctx context.Context, filter ReconciliationFilter, offset, limit int) ([]*models.Reconciliation, int64, error) {
	var recs []*models.Reconciliation
	var total int64

	q := applyFilter(r.db.WithContext(ctx).Model(&models.Reconciliation{}), filter)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = applyFilter(r.db.WithContext(ctx), filter)
	err := q.Preload("Assignee").
		Order("due_date, id").
		Offset(offset).Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, 0, err
	}

	return recs, total, nil
}

// ListDueOn lists pending reconciliations due exactly on the given day
func (r *reconciliationRepository) ListDueOn(ctx context.Context, day time.Time) ([]*models.Reconciliation, error) {
	var recs []*models.Reconciliation
	err := r.db.WithContext(ctx).
		Preload("Assignee").
		Where("status = ?", "PENDING").
		Where("due_date = ?", day).
		Order("id").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// ListOverdue lists pending reconciliations with a due date before today
func (r *reconciliationRepository) ListOverdue(ctx context.Context, today time.Time) ([]*models.Reconciliation, error) {
	var recs []*models.Reconciliation
	err := r.db.WithContext(ctx).
		Preload("Assignee").
		Where("status = ?", "PENDING").
		Where("due_date < ?", today).
		Order("due_date, id").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// CountByStatus counts reconciliations with the given status
func (r *reconciliationRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Reconciliation{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// CountByAssignee counts reconciliations grouped by assignee
func (r *reconciliationRepository) CountByAssignee(ctx context.Context) (map[uint]int64, error) {
	type row struct {
		AssigneeID uint
		Total      int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Reconciliation{}).
		Select("assignee_id, COUNT(*) AS total").
		Where("assignee_id IS NOT NULL").
		Group("assignee_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.AssigneeID] = r.Total
	}
	return counts, nil
}
