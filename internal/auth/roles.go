package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/studypay-service/internal/domain"
	apperrors "github.com/spec-kit/studypay-service/pkg/util"
)

// RequireRole ensures the principal's role is in the allowed set. An empty
// set means any authenticated caller passes.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireStaff allows admin and owner callers through.
func RequireStaff() fiber.Handler {
	return RequireRole(domain.RoleAdmin, domain.RoleOwner)
}

// RequireOwner allows only the owner role through.
func RequireOwner() fiber.Handler {
	return RequireRole(domain.RoleOwner)
}
