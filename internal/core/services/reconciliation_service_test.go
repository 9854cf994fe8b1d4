package services

import (
	"context"
	"testing"
	"time"

	"recontrack/internal/adapters/persistence/models"
	"recontrack/internal/adapters/persistence/repositories"
	"recontrack/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// In-memory fakes. Only the behavior the service exercises is implemented.

type fakeReconRepo struct {
	rows   map[uint]*models.Reconciliation
	nextID uint
}

func newFakeReconRepo() *fakeReconRepo {
	return &fakeReconRepo{rows: make(map[uint]*models.Reconciliation), nextID: 1}
}

func (f *fakeReconRepo) Create(_ context.Context, rec *models.Reconciliation) error {
	rec.ID = f.nextID
	f.nextID++
	cp := *rec
	f.rows[rec.ID] = &cp
	return nil
}

func (f *fakeReconRepo) GetByID(_ context.Context, id uint) (*models.Reconciliation, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *row
	return &cp, nil
}

func (f *fakeReconRepo) Update(_ context.Context, rec *models.Reconciliation) error {
	if _, ok := f.rows[rec.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *rec
	f.rows[rec.ID] = &cp
	return nil
}

func (f *fakeReconRepo) Delete(_ context.Context, id uint) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeReconRepo) List(_ context.Context, filter repositories.ReconciliationFilter, _, _ int) ([]*models.Reconciliation, int64, error) {
	var out []*models.Reconciliation
	for _, row := range f.rows {
		if filter.Status != "" && row.Status != filter.Status {
			continue
		}
		cp := *row
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (f *fakeReconRepo) ListDueOn(_ context.Context, day time.Time) ([]*models.Reconciliation, error) {
	var out []*models.Reconciliation
	for _, row := range f.rows {
		if row.Status == "PENDING" && row.DueDate.Equal(day) {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeReconRepo) ListOverdue(_ context.Context, today time.Time) ([]*models.Reconciliation, error) {
	var out []*models.Reconciliation
	for _, row := range f.rows {
		if row.Status == "PENDING" && row.DueDate.Before(today) {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeReconRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, row := range f.rows {
		if row.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeReconRepo) CountByAssignee(_ context.Context) (map[uint]int64, error) {
	counts := make(map[uint]int64)
	for _, row := range f.rows {
		if row.AssigneeID != nil {
			counts[*row.AssigneeID]++
		}
	}
	return counts, nil
}

type fakeCompletionRepo struct {
	records []*models.CompletionRecord
}

func (f *fakeCompletionRepo) Create(_ context.Context, record *models.CompletionRecord) error {
	record.ID = uint(len(f.records) + 1)
	cp := *record
	f.records = append(f.records, &cp)
	return nil
}

func (f *fakeCompletionRepo) ListByReconciliation(_ context.Context, reconciliationID uint, _, _ int) ([]*models.CompletionRecord, int64, error) {
	var out []*models.CompletionRecord
	for _, r := range f.records {
		if r.ReconciliationID == reconciliationID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCompletionRepo) ListRecent(_ context.Context, limit int) ([]*models.CompletionRecord, error) {
	if len(f.records) < limit {
		limit = len(f.records)
	}
	return f.records[len(f.records)-limit:], nil
}

func (f *fakeCompletionRepo) CountSince(_ context.Context, since time.Time) (int64, error) {
	var n int64
	for _, r := range f.records {
		if !r.CompletedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

type fakeMemberRepo struct {
	members map[uint]*models.TeamMember
}

func (f *fakeMemberRepo) Create(_ context.Context, m *models.TeamMember) error {
	f.members[m.ID] = m
	return nil
}

func (f *fakeMemberRepo) GetByID(_ context.Context, id uint) (*models.TeamMember, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (f *fakeMemberRepo) Update(_ context.Context, _ *models.TeamMember) error { return nil }
func (f *fakeMemberRepo) Delete(_ context.Context, _ uint) error               { return nil }

func (f *fakeMemberRepo) List(_ context.Context) ([]*models.TeamMember, error) {
	var out []*models.TeamMember
	for _, m := range f.members {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMemberRepo) ExistsByEmail(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func newTestService(now time.Time) (*ReconciliationService, *fakeReconRepo, *fakeCompletionRepo) {
	reconRepo := newFakeReconRepo()
	completionRepo := &fakeCompletionRepo{}
	memberRepo := &fakeMemberRepo{members: map[uint]*models.TeamMember{
		1: {ID: 1, Name: "Sarah Chen", Email: "sarah@example.com", Role: "Senior Analyst"},
	}}

	svc := NewReconciliationService(reconRepo, completionRepo, memberRepo)
	svc.now = func() time.Time { return now }
	return svc, reconRepo, completionRepo
}

func TestCreateSetsFirstDueDate(t *testing.T) {
	// Friday 2024-03-01.
	svc, _, _ := newTestService(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	rec, err := svc.Create(ctx, domain.RoleAdmin, &CreateReconciliationInput{
		Name:      "Bank vs GL",
		Frequency: "WEEKLY",
	})
	require.NoError(t, err)

	assert.Equal(t, "PENDING", rec.Status)
	assert.Equal(t, "MEDIUM", rec.Priority)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), rec.DueDate)
}

func TestCreateRejectsUserRole(t *testing.T) {
	svc, _, _ := newTestService(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))

	_, err := svc.Create(context.Background(), domain.RoleUser, &CreateReconciliationInput{
		Name:      "Bank vs GL",
		Frequency: "DAILY",
	})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestCreateRejectsUnknownAssignee(t *testing.T) {
	svc, _, _ := newTestService(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))

	missing := uint(42)
	_, err := svc.Create(context.Background(), domain.RoleAdmin, &CreateReconciliationInput{
		Name:       "Bank vs GL",
		Frequency:  "DAILY",
		AssigneeID: &missing,
	})
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestCompleteAppendsRecordAndKeepsDueDate(t *testing.T) {
	svc, reconRepo, completionRepo := newTestService(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	rec, err := svc.Create(ctx, domain.RoleAdmin, &CreateReconciliationInput{
		Name:      "Bank vs GL",
		Frequency: "WEEKLY",
	})
	require.NoError(t, err)
	dueBefore := rec.DueDate

	// Completed by a regular user two days before it is due.
	updated, record, err := svc.Complete(ctx, domain.RoleUser, rec.ID, 7, &CompleteReconciliationInput{
		ItemsReconciled: 120,
		ExceptionsFound: 3,
		Notes:           "two FX breaks carried over",
	})
	require.NoError(t, err)

	assert.Equal(t, "COMPLETED", updated.Status)
	assert.Equal(t, dueBefore, updated.DueDate, "completion must not move the due date")
	require.NotNil(t, updated.LastCompletedAt)

	assert.Equal(t, rec.ID, record.ReconciliationID)
	assert.Equal(t, uint(7), record.CompletedBy)
	assert.Equal(t, 120, record.ItemsReconciled)
	assert.Len(t, completionRepo.records, 1)

	stored, err := reconRepo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", stored.Status)
}

func TestCompleteTwiceFails(t *testing.T) {
	svc, _, _ := newTestService(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	rec, err := svc.Create(ctx, domain.RoleAdmin, &CreateReconciliationInput{
		Name:      "Bank vs GL",
		Frequency: "DAILY",
	})
	require.NoError(t, err)

	_, _, err = svc.Complete(ctx, domain.RoleUser, rec.ID, 7, &CompleteReconciliationInput{})
	require.NoError(t, err)

	_, _, err = svc.Complete(ctx, domain.RoleUser, rec.ID, 7, &CompleteReconciliationInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestResetRollsDueDateForward(t *testing.T) {
	// Wednesday 2024-03-06, after completing work due Monday 2024-03-04.
	svc, _, _ := newTestService(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	rec, err := svc.Create(ctx, domain.RoleAdmin, &CreateReconciliationInput{
		Name:      "Bank vs GL",
		Frequency: "WEEKLY",
	})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC) }
	_, _, err = svc.Complete(ctx, domain.RoleUser, rec.ID, 7, &CompleteReconciliationInput{})
	require.NoError(t, err)

	_, err = svc.Reset(ctx, domain.RoleUser, rec.ID)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	reset, err := svc.Reset(ctx, domain.RoleAdmin, rec.ID)
	require.NoError(t, err)

	assert.Equal(t, "PENDING", reset.Status)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), reset.DueDate)
}

func TestDeleteKeepsCompletionHistory(t *testing.T) {
	svc, _, _ := newTestService(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	rec, err := svc.Create(ctx, domain.RoleAdmin, &CreateReconciliationInput{
		Name:      "Bank vs GL",
		Frequency: "DAILY",
	})
	require.NoError(t, err)

	_, _, err = svc.Complete(ctx, domain.RoleUser, rec.ID, 7, &CompleteReconciliationInput{})
	require.NoError(t, err)

	err = svc.Delete(ctx, domain.RoleUser, rec.ID)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	require.NoError(t, svc.Delete(ctx, domain.RoleAdmin, rec.ID))

	_, err = svc.GetByID(ctx, rec.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	history, total, err := svc.History(ctx, rec.ID, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, history, 1)
}

func TestListOverdueDerivedFromDueDate(t *testing.T) {
	svc, _, _ := newTestService(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	rec, err := svc.Create(ctx, domain.RoleAdmin, &CreateReconciliationInput{
		Name:      "Bank vs GL",
		Frequency: "DAILY",
	})
	require.NoError(t, err)

	// Due Monday 2024-03-04. Not overdue on the due date itself.
	svc.now = func() time.Time { return time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC) }
	overdue, err := svc.ListOverdue(ctx)
	require.NoError(t, err)
	assert.Empty(t, overdue)

	dueToday, err := svc.ListDueToday(ctx)
	require.NoError(t, err)
	assert.Len(t, dueToday, 1)

	// The next morning it is overdue.
	svc.now = func() time.Time { return time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC) }
	overdue, err = svc.ListOverdue(ctx)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, rec.ID, overdue[0].ID)

	// Completing clears it without touching the due date.
	_, _, err = svc.Complete(ctx, domain.RoleUser, rec.ID, 7, &CompleteReconciliationInput{})
	require.NoError(t, err)

	overdue, err = svc.ListOverdue(ctx)
	require.NoError(t, err)
	assert.Empty(t, overdue)
}

func TestUpdateFrequencyRecomputesDueDate(t *testing.T) {
	svc, _, _ := newTestService(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	rec, err := svc.Create(ctx, domain.RoleAdmin, &CreateReconciliationInput{
		Name:      "Bank vs GL",
		Frequency: "DAILY",
	})
	require.NoError(t, err)

	freq := "MONTHLY"
	updated, err := svc.Update(ctx, domain.RoleAdmin, rec.ID, &UpdateReconciliationInput{
		Frequency: &freq,
	})
	require.NoError(t, err)

	assert.Equal(t, "MONTHLY", updated.Frequency)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), updated.DueDate)
}
