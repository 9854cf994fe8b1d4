package repositories

import (
	"context"

	"recontrack/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// memberRepository implements MemberRepository interface
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new team member repository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// Create creates a new team member
func (r *memberRepository) Create(ctx context.Context, member *models.TeamMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// GetByID gets a team member by ID
func (r *memberRepository) GetByID(ctx context.Context, id uint) (*models.TeamMember, error) {
	var member models.TeamMember
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// Update updates a team member
func (r *memberRepository) Update(ctx context.Context, member *models.TeamMember) error {
	return r.db.WithContext(ctx).Save(member).Error
}

// Delete soft deletes a team member
func (r *memberRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.TeamMember{}, id).Error
}

// List lists all team members ordered by name
func (r *memberRepository) List(ctx context.Context) ([]*models.TeamMember, error) {
	var members []*models.TeamMember
	err := r.db.WithContext(ctx).Order("name").Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// ExistsByEmail checks if email exists
func (r *memberRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TeamMember{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
