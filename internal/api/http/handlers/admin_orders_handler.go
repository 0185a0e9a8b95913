package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/studypay-service/internal/api/dto"
	"github.com/spec-kit/studypay-service/internal/auth"
	"github.com/spec-kit/studypay-service/internal/domain"
	"github.com/spec-kit/studypay-service/internal/service"
	apperrors "github.com/spec-kit/studypay-service/pkg/util"
)

// AdminOrdersHandler exposes the administrative order workflow.
type AdminOrdersHandler struct {
	orders *service.OrderService
}

// NewAdminOrdersHandler constructs handler.
func NewAdminOrdersHandler(orders *service.OrderService) *AdminOrdersHandler {
	return &AdminOrdersHandler{orders: orders}
}

// ListPaid handles GET /admin/orders.
func (h *AdminOrdersHandler) ListPaid(c *fiber.Ctx) error {
	projections, err := h.orders.ListPaidOrders(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": projections})
}

// ListWork handles GET /admin/orders/work.
func (h *AdminOrdersHandler) ListWork(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	projections, err := h.orders.ListWorkOrders(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": projections})
}

// Detail handles GET /admin/orders/:id.
func (h *AdminOrdersHandler) Detail(c *fiber.Ctx) error {
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

// Notification handles GET /admin/orders/notification/:id. Returns the order
// with the owner resolved to a display name for message rendering.
func (h *AdminOrdersHandler) Notification(c *fiber.Ctx) error {
	view, err := h.orders.GetOrderNotification(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderNotificationResponse(&view.Order, view.User)})
}

// Take handles POST /admin/orders/take/:id.
func (h *AdminOrdersHandler) Take(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	order, err := h.orders.TakeOrder(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// Transition handles PATCH /admin/orders/status.
func (h *AdminOrdersHandler) Transition(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.StatusChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	order, err := h.orders.TransitionStatus(c.Context(), principal.User, req.OrderID, domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// Override handles PATCH /admin/orders/status/override. Owner only.
func (h *AdminOrdersHandler) Override(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.StatusChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	order, err := h.orders.OverrideStatus(c.Context(), principal.User, req.OrderID, domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}
