package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/studypay-service/internal/domain"
)

// TokenKind distinguishes access tokens from bot-issued reset tokens.
type TokenKind string

const (
	TokenKindAccess TokenKind = "access"
	TokenKindReset  TokenKind = "reset"
)

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret    []byte
	accessTTL time.Duration
	resetTTL  time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, accessTTLMinutes, resetTTLMinutes int) *TokenManager {
	if accessTTLMinutes <= 0 {
		accessTTLMinutes = 43200
	}
	if resetTTLMinutes <= 0 {
		resetTTLMinutes = 10
	}
	return &TokenManager{
		secret:    []byte(secret),
		accessTTL: time.Duration(accessTTLMinutes) * time.Minute,
		resetTTL:  time.Duration(resetTTLMinutes) * time.Minute,
	}
}

// Claims describes JWT payload.
type Claims struct {
	SubjectID string       `json:"sub"`
	Kind      TokenKind    `json:"kind"`
	Role      *domain.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// GenerateAccessToken builds and signs an access JWT for the subject. The
// role claim is informational; authorization always re-reads the account.
func (tm *TokenManager) GenerateAccessToken(subjectID string, role *domain.Role) (string, time.Time, error) {
	return tm.generate(subjectID, TokenKindAccess, role, tm.accessTTL)
}

// GenerateResetToken builds a short-lived password-reset JWT.
func (tm *TokenManager) GenerateResetToken(subjectID string) (string, time.Time, error) {
	return tm.generate(subjectID, TokenKindReset, nil, tm.resetTTL)
}

func (tm *TokenManager) generate(subjectID string, kind TokenKind, role *domain.Role, ttl time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(ttl)
	claims := &Claims{
		SubjectID: subjectID,
		Kind:      kind,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates and returns claims for the expected token kind.
func (tm *TokenManager) ParseToken(tokenStr string, kind TokenKind) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Kind != kind {
		return nil, errors.New("unexpected token kind")
	}
	return claims, nil
}
