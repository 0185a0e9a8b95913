package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/studypay-service/internal/domain"
	"github.com/spec-kit/studypay-service/internal/repository"
	apperrors "github.com/spec-kit/studypay-service/pkg/util"
)

const verificationCodeLength = 6

// VerificationService manages account verification via telegram codes.
type VerificationService struct {
	users     repository.UserRepository
	codes     repository.VerificationCodeRepository
	links     repository.ChatLinkRepository
	messenger Messenger
	codeTTL   time.Duration
}

func NewVerificationService(
	users repository.UserRepository,
	codes repository.VerificationCodeRepository,
	links repository.ChatLinkRepository,
	messenger Messenger,
	codeTTLMinutes int,
) *VerificationService {
	return &VerificationService{
		users:     users,
		codes:     codes,
		links:     links,
		messenger: messenger,
		codeTTL:   time.Duration(codeTTLMinutes) * time.Minute,
	}
}

// SendCode generates a short-lived code and delivers it to the user's linked
// telegram chat. The code replaces any previous one. The chat link is checked
// before the code is stored so a missing link never leaves a live code behind.
func (s *VerificationService) SendCode(ctx context.Context, user *domain.User) error {
	if user.IsVerified {
		return apperrors.NewForbidden("account already verified")
	}
	if s.messenger == nil {
		return apperrors.NewNotFound("chat link", map[string]any{"telegram": user.Telegram})
	}
	if _, err := s.links.GetByTelegram(ctx, user.Telegram); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("chat link", map[string]any{"telegram": user.Telegram})
		}
		return apperrors.MapError(err)
	}
	code, err := generateCode(verificationCodeLength)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.codes.Set(ctx, user.ID, code, s.codeTTL); err != nil {
		return apperrors.MapError(err)
	}
	text := fmt.Sprintf("Your StudyPay verification code: %s (valid for %d minutes)", code, int(s.codeTTL.Minutes()))
	if err := s.messenger.Notify(ctx, user.Telegram, text); err != nil {
		_ = s.codes.Delete(ctx, user.ID)
		return apperrors.NewNotFound("chat link", map[string]any{"telegram": user.Telegram})
	}
	return nil
}

// ConfirmCode checks the submitted code and marks the account verified.
func (s *VerificationService) ConfirmCode(ctx context.Context, user *domain.User, code string) error {
	if user.IsVerified {
		return apperrors.NewInvalidState("account already verified", nil)
	}
	stored, err := s.codes.Get(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrCodeNotFound) {
			return apperrors.NewValidationError("verification code expired or never sent", nil)
		}
		return apperrors.MapError(err)
	}
	if stored != code {
		return apperrors.NewValidationError("verification code does not match", nil)
	}
	if err := s.codes.Delete(ctx, user.ID); err != nil {
		return apperrors.MapError(err)
	}
	user.IsVerified = true
	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// HasBotChat reports whether the user's telegram handle is linked to a chat.
func (s *VerificationService) HasBotChat(ctx context.Context, user *domain.User) (bool, error) {
	_, err := s.links.GetByTelegram(ctx, user.Telegram)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, apperrors.MapError(err)
	}
	return true, nil
}

func generateCode(length int) (string, error) {
	const digits = "0123456789"
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		out[i] = digits[n.Int64()]
	}
	return string(out), nil
}
