package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/studypay-service/internal/api/dto"
	"github.com/spec-kit/studypay-service/internal/auth"
	"github.com/spec-kit/studypay-service/internal/service"
	apperrors "github.com/spec-kit/studypay-service/pkg/util"
)

// OrdersHandler exposes the user-facing order endpoints.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orders *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// Create handles POST /order.
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	var req dto.OrderCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	order, err := h.orders.CreateOrder(c.Context(), service.OrderCreateInput{
		User:        req.User,
		Telegram:    req.Telegram,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Service:     req.Service,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// ListMine handles GET /orders.
func (h *OrdersHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	projections, err := h.orders.ListPersonalOrders(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": projections})
}

// Detail handles GET /order/:id.
func (h *OrdersHandler) Detail(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	projection, err := h.orders.GetOrderDetail(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": projection})
}

// Cancel handles POST /order/cancel/:id.
func (h *OrdersHandler) Cancel(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	order, err := h.orders.CancelOrder(c.Context(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// Update handles PUT /order/update/:id.
func (h *OrdersHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.OrderUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	order, err := h.orders.UpdateOrder(c.Context(), principal.User.ID, c.Params("id"), service.OrderUpdateInput{
		Telegram:    req.Telegram,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}
