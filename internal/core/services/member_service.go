package services

import (
	"context"
	"errors"

	"recontrack/internal/adapters/persistence/models"
	"recontrack/internal/adapters/persistence/repositories"
	"recontrack/internal/pkg/logger"

	"gorm.io/gorm"
)

var (
	ErrMemberNotFound      = errors.New("team member not found")
	ErrMemberAlreadyExists = errors.New("team member email already registered")
)

// MemberService handles the team member registry
type MemberService struct {
	memberRepo repositories.MemberRepository
}

// NewMemberService creates a new member service
func NewMemberService(memberRepo repositories.MemberRepository) *MemberService {
	return &MemberService{memberRepo: memberRepo}
}

// CreateMemberInput represents team member creation input
type CreateMemberInput struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,max=50"`
}

// UpdateMemberInput represents team member update input
type UpdateMemberInput struct {
	Name  *string `json:"name" validate:"omitempty,max=100"`
	Email *string `json:"email" validate:"omitempty,email"`
	Role  *string `json:"role" validate:"omitempty,max=50"`
}

// CreateMember registers a new team member
func (s *MemberService) CreateMember(ctx context.Context, input *CreateMemberInput) (*models.TeamMember, error) {
	exists, err := s.memberRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrMemberAlreadyExists
	}

	member := &models.TeamMember{
		Name:  input.Name,
		Email: input.Email,
		Role:  input.Role,
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	logger.Log.WithField("email", member.Email).Info("team member added")
	return member, nil
}

// GetMember gets a team member by ID
func (s *MemberService) GetMember(ctx context.Context, id uint) (*models.TeamMember, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// ListMembers lists all team members
func (s *MemberService) ListMembers(ctx context.Context) ([]*models.TeamMember, error) {
	return s.memberRepo.List(ctx)
}

// UpdateMember updates a team member
func (s *MemberService) UpdateMember(ctx context.Context, id uint, input *UpdateMemberInput) (*models.TeamMember, error) {
	member, err := s.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != member.Email {
		exists, err := s.memberRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrMemberAlreadyExists
		}
		member.Email = *input.Email
	}
	if input.Name != nil {
		member.Name = *input.Name
	}
	if input.Role != nil {
		member.Role = *input.Role
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}

// DeleteMember removes a team member from the registry
func (s *MemberService) DeleteMember(ctx context.Context, id uint) error {
	if _, err := s.GetMember(ctx, id); err != nil {
		return err
	}
	return s.memberRepo.Delete(ctx, id)
}
