package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/studypay-service/internal/api/dto"
	"github.com/spec-kit/studypay-service/internal/auth"
	"github.com/spec-kit/studypay-service/internal/service"
	apperrors "github.com/spec-kit/studypay-service/pkg/util"
)

// AdminHandler exposes staff authentication endpoints.
type AdminHandler struct {
	auth *service.AuthService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService) *AdminHandler {
	return &AdminHandler{auth: authService}
}

// Login handles POST /auth/admin/login. Non-staff accounts are rejected even
// with valid credentials.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	result, err := h.auth.LoginAdmin(c.Context(), req.Telegram, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(result.User),
			"auth": dto.AuthResponse{Token: result.Token, ExpiresAt: result.ExpiresAt},
		},
	})
}

// CheckRole handles POST /auth/admin/check-role.
func (h *AdminHandler) CheckRole(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	role, isStaff := h.auth.CheckRole(principal.User)
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"role":     role,
			"is_staff": isStaff,
		},
	})
}
