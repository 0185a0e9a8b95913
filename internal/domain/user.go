package domain

import "time"

// Role enumerates marketplace roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
)

// IsStaff reports whether the role grants administrative order access.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleOwner
}

// AIPurchase records a paid AI-feature subscription.
type AIPurchase struct {
	PurchaseDate time.Time
	DaysValid    int
	RequestsMade int
}

// Expired reports whether the purchase window has elapsed at now.
func (p AIPurchase) Expired(now time.Time) bool {
	return now.After(p.PurchaseDate.AddDate(0, 0, p.DaysValid))
}

// User is the domain model for marketplace accounts.
type User struct {
	ID           string
	Handle       string
	Telegram     string
	PasswordHash string
	Role         Role
	IsVerified   bool
	AIAccess     bool
	AIPurchase   *AIPurchase
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
