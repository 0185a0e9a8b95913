package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCodeNotFound is returned when no active code exists for the user.
var ErrCodeNotFound = errors.New("verification code not found")

// VerificationCodeRepository stores short-lived confirmation codes. Expiry is
// delegated to the key TTL.
type VerificationCodeRepository interface {
	Set(ctx context.Context, userID, code string, ttl time.Duration) error
	Get(ctx context.Context, userID string) (string, error)
	Delete(ctx context.Context, userID string) error
}

type verificationCodeRepository struct {
	client *redis.Client
}

// NewVerificationCodeRepository constructs a Redis-backed implementation.
func NewVerificationCodeRepository(client *redis.Client) VerificationCodeRepository {
	return &verificationCodeRepository{client: client}
}

func codeKey(userID string) string {
	return "verify:" + userID
}

func (r *verificationCodeRepository) Set(ctx context.Context, userID, code string, ttl time.Duration) error {
	return r.client.Set(ctx, codeKey(userID), code, ttl).Err()
}

func (r *verificationCodeRepository) Get(ctx context.Context, userID string) (string, error) {
	code, err := r.client.Get(ctx, codeKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", err
	}
	return code, nil
}

func (r *verificationCodeRepository) Delete(ctx context.Context, userID string) error {
	return r.client.Del(ctx, codeKey(userID)).Err()
}
