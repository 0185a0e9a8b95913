package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/studypay-service/internal/api/dto"
	"github.com/spec-kit/studypay-service/internal/domain"
	"github.com/spec-kit/studypay-service/internal/service"
	apperrors "github.com/spec-kit/studypay-service/pkg/util"
)

// OwnerHandler exposes the owner console for account management.
type OwnerHandler struct {
	users  *service.UserService
	orders *service.OrderService
}

// NewOwnerHandler constructs handler.
func NewOwnerHandler(users *service.UserService, orders *service.OrderService) *OwnerHandler {
	return &OwnerHandler{users: users, orders: orders}
}

// ListUsers handles GET /owner/users.
func (h *OwnerHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.ListUsers(c.Context(), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return err
	}
	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// GetUser handles GET /owner/users/:id.
func (h *OwnerHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.users.GetUser(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// UpdateUser handles PUT /owner/users/:id.
func (h *OwnerHandler) UpdateUser(c *fiber.Ctx) error {
	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.UserUpdateInput{
		IsVerified: req.IsVerified,
		AIAccess:   req.AIAccess,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		input.Role = &role
	}
	if req.AIPurchase != nil {
		input.AIPurchase = &domain.AIPurchase{
			PurchaseDate: req.AIPurchase.PurchaseDate,
			DaysValid:    req.AIPurchase.DaysValid,
			RequestsMade: req.AIPurchase.RequestsMade,
		}
	}

	user, err := h.users.UpdateUser(c.Context(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// UserOrders handles GET /owner/users/:id/orders.
func (h *OwnerHandler) UserOrders(c *fiber.Ctx) error {
	projections, err := h.orders.ListOrdersForUser(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": projections})
}
