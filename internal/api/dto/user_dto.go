package dto

import (
	"time"

	"github.com/spec-kit/studypay-service/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Handle   string `json:"handle"`
	Telegram string `json:"telegram"`
	Password string `json:"password"`
}

// LoginRequest payload for login. Accounts sign in with their telegram
// contact.
type LoginRequest struct {
	Telegram string `json:"telegram"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PasswordResetRequest consumes a bot-issued reset token.
type PasswordResetRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// VerificationConfirmRequest carries the telegram code.
type VerificationConfirmRequest struct {
	Code string `json:"code"`
}

// AIPurchasePayload mirrors domain.AIPurchase on the wire.
type AIPurchasePayload struct {
	PurchaseDate time.Time `json:"purchase_date"`
	DaysValid    int       `json:"days_valid"`
	RequestsMade int       `json:"requests_made"`
}

// UserUpdateRequest lists owner-editable account fields.
type UserUpdateRequest struct {
	Role       *string            `json:"role,omitempty"`
	IsVerified *bool              `json:"is_verified,omitempty"`
	AIAccess   *bool              `json:"ai_access,omitempty"`
	AIPurchase *AIPurchasePayload `json:"ai_purchase,omitempty"`
}

// UserResponse is the public account view. The password hash never leaves
// the service layer.
type UserResponse struct {
	ID         string             `json:"id"`
	Handle     string             `json:"handle"`
	Telegram   string             `json:"telegram"`
	Role       domain.Role        `json:"role"`
	IsVerified bool               `json:"is_verified"`
	AIAccess   bool               `json:"ai_access"`
	AIPurchase *AIPurchasePayload `json:"ai_purchase,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// NewUserResponse maps a domain user onto the wire shape.
func NewUserResponse(user *domain.User) UserResponse {
	resp := UserResponse{
		ID:         user.ID,
		Handle:     user.Handle,
		Telegram:   user.Telegram,
		Role:       user.Role,
		IsVerified: user.IsVerified,
		AIAccess:   user.AIAccess,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
	if user.AIPurchase != nil {
		resp.AIPurchase = &AIPurchasePayload{
			PurchaseDate: user.AIPurchase.PurchaseDate,
			DaysValid:    user.AIPurchase.DaysValid,
			RequestsMade: user.AIPurchase.RequestsMade,
		}
	}
	return resp
}
