package services

import (
	"context"
	"time"

	"recontrack/internal/adapters/persistence/repositories"
	"recontrack/internal/core/schedule"
	"recontrack/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// ReminderService runs the scheduled morning sweep. It is read only with
// respect to reconciliations: overdue is always derived, so the sweep just
// reports, it never flips state.
type ReminderService struct {
	reconRepo        repositories.ReconciliationRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	cron             *cron.Cron
	now              func() time.Time
}

// NewReminderService creates a new reminder service
func NewReminderService(
	reconRepo repositories.ReconciliationRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
) *ReminderService {
	return &ReminderService{
		reconRepo:        reconRepo,
		refreshTokenRepo: refreshTokenRepo,
		cron:             cron.New(),
		now:              time.Now,
	}
}

// Start registers the jobs and starts the scheduler
func (s *ReminderService) Start() error {
	// Weekday mornings, after the business day opens.
	if _, err := s.cron.AddFunc("30 8 * * MON-FRI", s.sweep); err != nil {
		return err
	}
	// Nightly token table cleanup.
	if _, err := s.cron.AddFunc("0 3 * * *", s.cleanupTokens); err != nil {
		return err
	}

	s.cron.Start()
	logger.Log.Info("reminder scheduler started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *ReminderService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Log.Info("reminder scheduler stopped")
}

func (s *ReminderService) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	today := schedule.DateOf(s.now())

	overdue, err := s.reconRepo.ListOverdue(ctx, today)
	if err != nil {
		logger.Log.WithError(err).Error("overdue sweep failed")
		return
	}
	dueToday, err := s.reconRepo.ListDueOn(ctx, today)
	if err != nil {
		logger.Log.WithError(err).Error("due today sweep failed")
		return
	}

	for _, rec := range overdue {
		logger.Log.WithFields(map[string]interface{}{
			"reconciliation": rec.Name,
			"due_date":       rec.DueDate.Format("2006-01-02"),
			"priority":       rec.Priority,
		}).Warn("reconciliation overdue")
	}

	logger.Log.WithFields(map[string]interface{}{
		"overdue":   len(overdue),
		"due_today": len(dueToday),
	}).Info("morning reminder sweep done")
}

func (s *ReminderService) cleanupTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		logger.Log.WithError(err).Error("expired token cleanup failed")
		return
	}
	logger.Log.Info("expired refresh tokens cleaned up")
}
