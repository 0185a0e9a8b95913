package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/studypay-service/internal/auth"
	"github.com/spec-kit/studypay-service/internal/domain"
	"github.com/spec-kit/studypay-service/internal/repository"
	apperrors "github.com/spec-kit/studypay-service/pkg/util"
)

// AuthService handles registration, login and password recovery.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	bcryptCost int
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, bcryptCost int) *AuthService {
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

// RegisterInput carries registration payload.
type RegisterInput struct {
	Handle   string
	Telegram string
	Password string
}

// AuthResult bundles a signed token with its subject.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// Register creates an unverified user account. Both the handle and the
// telegram contact must be unused.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	handle := strings.TrimSpace(input.Handle)
	telegram := strings.TrimSpace(input.Telegram)
	if handle == "" || telegram == "" {
		return nil, apperrors.NewValidationError("handle and telegram are required", nil)
	}
	if len(input.Password) < 6 {
		return nil, apperrors.NewValidationError("password must be at least 6 characters", nil)
	}

	if _, err := s.users.GetByHandle(ctx, handle); err == nil {
		return nil, apperrors.NewConflict("handle already taken", map[string]any{"handle": handle})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}
	if _, err := s.users.GetByTelegram(ctx, telegram); err == nil {
		return nil, apperrors.NewConflict("telegram already linked", map[string]any{"telegram": telegram})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hashed, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Handle:       handle,
		Telegram:     telegram,
		PasswordHash: hashed,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.issueToken(user)
}

// Login authenticates by telegram contact and password.
func (s *AuthService) Login(ctx context.Context, telegram, password string) (*AuthResult, error) {
	user, err := s.authenticate(ctx, telegram, password)
	if err != nil {
		return nil, err
	}
	return s.issueToken(user)
}

// LoginAdmin authenticates staff accounts only. A valid password on a
// non-staff account is still rejected.
func (s *AuthService) LoginAdmin(ctx context.Context, telegram, password string) (*AuthResult, error) {
	user, err := s.authenticate(ctx, telegram, password)
	if err != nil {
		return nil, err
	}
	if !user.Role.IsStaff() {
		return nil, apperrors.NewForbidden("administrative role required")
	}
	return s.issueToken(user)
}

// CheckRole reports whether the user holds a staff role.
func (s *AuthService) CheckRole(user *domain.User) (domain.Role, bool) {
	if user == nil {
		return "", false
	}
	return user.Role, user.Role.IsStaff()
}

// IssueResetToken mints a short-lived password reset token for the account
// linked to the telegram contact.
func (s *AuthService) IssueResetToken(ctx context.Context, telegram string) (string, *domain.User, error) {
	user, err := s.users.GetByTelegram(ctx, telegram)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, apperrors.NewNotFound("user", map[string]any{"telegram": telegram})
		}
		return "", nil, apperrors.MapError(err)
	}
	token, _, err := s.tokens.GenerateResetToken(user.ID)
	if err != nil {
		return "", nil, apperrors.NewInternalError(err)
	}
	return token, user, nil
}

// ResetPassword consumes a reset token and stores the new password.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	if len(newPassword) < 6 {
		return apperrors.NewValidationError("password must be at least 6 characters", nil)
	}
	claims, err := s.tokens.ParseToken(resetToken, auth.TokenKindReset)
	if err != nil {
		return apperrors.NewUnauthorized("invalid or expired reset token")
	}
	user, err := s.users.GetByID(ctx, claims.SubjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return apperrors.MapError(err)
	}
	hashed, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	user.PasswordHash = hashed
	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *AuthService) authenticate(ctx context.Context, telegram, password string) (*domain.User, error) {
	if telegram == "" || password == "" {
		return nil, apperrors.NewValidationError("telegram and password are required", nil)
	}
	user, err := s.users.GetByTelegram(ctx, telegram)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	return user, nil
}

func (s *AuthService) issueToken(user *domain.User) (*AuthResult, error) {
	role := user.Role
	token, expiresAt, err := s.tokens.GenerateAccessToken(user.ID, &role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}
