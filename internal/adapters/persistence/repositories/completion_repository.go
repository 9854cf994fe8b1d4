package repositories

import (
	"context"
	"time"

	"recontrack/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// completionRepository implements CompletionRepository interface
type completionRepository struct {
	db *gorm.DB
}

// NewCompletionRepository creates a new completion history repository
func NewCompletionRepository(db *gorm.DB) CompletionRepository {
	return &completionRepository{db: db}
}

// Create appends a completion record
func (r *completionRepository) Create(ctx context.Context, record *models.CompletionRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// ListByReconciliation lists history for one reconciliation, newest first
func (r *completionRepository) ListByReconciliation(ctx context.Context, reconciliationID uint, offset, limit int) ([]*models.CompletionRecord, int64, error) {
	var records []*models.CompletionRecord
	var total int64

	q := r.db.WithContext(ctx).
		Model(&models.CompletionRecord{}).
		Where("reconciliation_id = ?", reconciliationID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Completer").
		Where("reconciliation_id = ?", reconciliationID).
		Order("completed_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// ListRecent lists the most recent completions across all reconciliations
func (r *completionRepository) ListRecent(ctx context.Context, limit int) ([]*models.CompletionRecord, error) {
	var records []*models.CompletionRecord
	err := r.db.WithContext(ctx).
		Preload("Completer").
		Order("completed_at DESC, id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// CountSince counts completions recorded at or after the given time
func (r *completionRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CompletionRecord{}).
		Where("completed_at >= ?", since).
		Count(&count).Error
	return count, err
}
