package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/studypay-service/internal/domain"
	"github.com/spec-kit/studypay-service/internal/repository"
	apperrors "github.com/spec-kit/studypay-service/pkg/util"
)

// UserService serves profile reads and owner-side account management.
type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// UserUpdateInput lists the account fields the owner may change. Nil fields
// are left untouched.
type UserUpdateInput struct {
	Role       *domain.Role
	IsVerified *bool
	AIAccess   *bool
	AIPurchase *domain.AIPurchase
}

// GetUser loads an account by identifier.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// ListUsers returns a page of accounts for the owner console.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// UpdateUser applies owner-side changes to an account. The owner role itself
// cannot be granted or revoked through this path.
func (s *UserService) UpdateUser(ctx context.Context, id string, input UserUpdateInput) (*domain.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Role != nil {
		switch *input.Role {
		case domain.RoleUser, domain.RoleAdmin:
			user.Role = *input.Role
		default:
			return nil, apperrors.NewValidationError("role must be user or admin", map[string]any{"role": *input.Role})
		}
	}
	if input.IsVerified != nil {
		user.IsVerified = *input.IsVerified
	}
	if input.AIAccess != nil {
		user.AIAccess = *input.AIAccess
	}
	if input.AIPurchase != nil {
		if input.AIPurchase.DaysValid <= 0 {
			return nil, apperrors.NewValidationError("days_valid must be positive", nil)
		}
		user.AIPurchase = input.AIPurchase
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}
