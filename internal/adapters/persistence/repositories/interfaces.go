package repositories

import (
	"context"
	"time"

	"recontrack/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	Count(ctx context.Context) (int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// MemberRepository defines team member repository interface
type MemberRepository interface {
	Create(ctx context.Context, member *models.TeamMember) error
	GetByID(ctx context.Context, id uint) (*models.TeamMember, error)
	Update(ctx context.Context, member *models.TeamMember) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.TeamMember, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// ReconciliationFilter narrows List queries. Zero values mean no filter.
type ReconciliationFilter struct {
	Status     string
	Frequency  string
	Priority   string
	AssigneeID *uint
}

// ReconciliationRepository defines reconciliation repository interface
type ReconciliationRepository interface {
	Create(ctx context.Context, rec *models.Reconciliation) error
	GetByID(ctx context.Context, id uint) (*models.Reconciliation, error)
	Update(ctx context.Context, rec *models.Reconciliation) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter ReconciliationFilter, offset, limit int) ([]*models.Reconciliation, int64, error)
	ListDueOn(ctx context.Context, day time.Time) ([]*models.Reconciliation, error)
	ListOverdue(ctx context.Context, today time.Time) ([]*models.Reconciliation, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountByAssignee(ctx context.Context) (map[uint]int64, error)
}

// CompletionRepository defines completion history repository interface.
// Records are append only.
type CompletionRepository interface {
	Create(ctx context.Context, record *models.CompletionRecord) error
	ListByReconciliation(ctx context.Context, reconciliationID uint, offset, limit int) ([]*models.CompletionRecord, int64, error)
	ListRecent(ctx context.Context, limit int) ([]*models.CompletionRecord, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}
