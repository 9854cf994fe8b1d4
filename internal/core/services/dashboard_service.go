package services

import (
	"context"
	"time"

	"recontrack/internal/adapters/persistence/models"
	"recontrack/internal/adapters/persistence/repositories"
	"recontrack/internal/core/schedule"
)

// DashboardService aggregates read-only summary views
type DashboardService struct {
	reconRepo      repositories.ReconciliationRepository
	completionRepo repositories.CompletionRepository
	memberRepo     repositories.MemberRepository
	now            func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	reconRepo repositories.ReconciliationRepository,
	completionRepo repositories.CompletionRepository,
	memberRepo repositories.MemberRepository,
) *DashboardService {
	return &DashboardService{
		reconRepo:      reconRepo,
		completionRepo: completionRepo,
		memberRepo:     memberRepo,
		now:            time.Now,
	}
}

// DashboardSummary is the headline counters block
type DashboardSummary struct {
	Pending           int64 `json:"pending"`
	Completed         int64 `json:"completed"`
	Overdue           int64 `json:"overdue"`
	DueToday          int64 `json:"due_today"`
	CompletedLastWeek int64 `json:"completed_last_week"`
}

// MemberWorkload pairs a team member with their assignment count
type MemberWorkload struct {
	Member   *models.TeamMember `json:"member"`
	Assigned int64              `json:"assigned"`
}

// Dashboard is the full dashboard payload
type Dashboard struct {
	Summary           DashboardSummary                   `json:"summary"`
	DueToday          []*models.ReconciliationResponse   `json:"due_today"`
	Overdue           []*models.ReconciliationResponse   `json:"overdue"`
	Workload          []MemberWorkload                   `json:"workload"`
	RecentCompletions []*models.CompletionRecordResponse `json:"recent_completions"`
}

// Build assembles the dashboard from live data
func (s *DashboardService) Build(ctx context.Context) (*Dashboard, error) {
	today := schedule.DateOf(s.now())

	pending, err := s.reconRepo.CountByStatus(ctx, "PENDING")
	if err != nil {
		return nil, err
	}
	completed, err := s.reconRepo.CountByStatus(ctx, "COMPLETED")
	if err != nil {
		return nil, err
	}

	overdue, err := s.reconRepo.ListOverdue(ctx, today)
	if err != nil {
		return nil, err
	}
	dueToday, err := s.reconRepo.ListDueOn(ctx, today)
	if err != nil {
		return nil, err
	}

	lastWeek, err := s.completionRepo.CountSince(ctx, today.AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}

	workload, err := s.buildWorkload(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.completionRepo.ListRecent(ctx, 10)
	if err != nil {
		return nil, err
	}

	dash := &Dashboard{
		Summary: DashboardSummary{
			Pending:           pending,
			Completed:         completed,
			Overdue:           int64(len(overdue)),
			DueToday:          int64(len(dueToday)),
			CompletedLastWeek: lastWeek,
		},
		DueToday:          make([]*models.ReconciliationResponse, 0, len(dueToday)),
		Overdue:           make([]*models.ReconciliationResponse, 0, len(overdue)),
		Workload:          workload,
		RecentCompletions: make([]*models.CompletionRecordResponse, 0, len(recent)),
	}

	for _, r := range dueToday {
		dash.DueToday = append(dash.DueToday, r.ToResponse(today))
	}
	for _, r := range overdue {
		dash.Overdue = append(dash.Overdue, r.ToResponse(today))
	}
	for _, c := range recent {
		dash.RecentCompletions = append(dash.RecentCompletions, c.ToResponse())
	}

	return dash, nil
}

func (s *DashboardService) buildWorkload(ctx context.Context) ([]MemberWorkload, error) {
	members, err := s.memberRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.reconRepo.CountByAssignee(ctx)
	if err != nil {
		return nil, err
	}

	workload := make([]MemberWorkload, 0, len(members))
	for _, m := range members {
		workload = append(workload, MemberWorkload{
			Member:   m,
			Assigned: counts[m.ID],
		})
	}
	return workload, nil
}
