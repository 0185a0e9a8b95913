package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/studypay-service/internal/domain"
	"github.com/spec-kit/studypay-service/internal/events"
	"github.com/spec-kit/studypay-service/internal/repository"
	apperrors "github.com/spec-kit/studypay-service/pkg/util"
)

// DiscountRate is applied to order prices in administrative views only.
const DiscountRate = 0.85

// UnknownUserName substitutes for an order owner that no longer resolves.
const UnknownUserName = "unknown user"

// DiscountedPrice returns the administrative price projection. Never persisted.
func DiscountedPrice(price float64) float64 {
	return price * DiscountRate
}

// OrderService coordinates the order lifecycle workflow.
type OrderService struct {
	orders     repository.OrderRepository
	users      repository.UserRepository
	categories repository.CategoryRepository
	dispatcher events.Dispatcher
}

// OrderDependencies bundles repositories for the order service.
type OrderDependencies struct {
	OrderRepo    repository.OrderRepository
	UserRepo     repository.UserRepository
	CategoryRepo repository.CategoryRepository
	Dispatcher   events.Dispatcher
}

// NewOrderService constructs the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	return &OrderService{
		orders:     deps.OrderRepo,
		users:      deps.UserRepo,
		categories: deps.CategoryRepo,
		dispatcher: deps.Dispatcher,
	}
}

// OrderCreateInput describes order creation payload. User may hold either an
// account identifier or a handle.
type OrderCreateInput struct {
	User        string
	Telegram    string
	Description string
	CategoryID  string
	Service     string
	Price       float64
}

// OrderUpdateInput describes the fields an owning user may change.
type OrderUpdateInput struct {
	Telegram    string
	Description *string
}

// OrderProjection is the caller-facing read view of an order. Identifier
// fields are replaced with display names where they resolve.
type OrderProjection struct {
	ID              string             `json:"id"`
	User            string             `json:"user"`
	Admin           *string            `json:"admin,omitempty"`
	Telegram        string             `json:"telegram"`
	Description     string             `json:"description"`
	Category        string             `json:"category"`
	Service         string             `json:"service"`
	Price           float64            `json:"price"`
	DiscountedPrice *float64           `json:"discounted_price,omitempty"`
	Status          domain.OrderStatus `json:"status"`
	Closed          bool               `json:"closed"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// CreateOrder creates an order for a verified user. The acting user is
// resolved by exact identifier first, then by handle.
func (s *OrderService) CreateOrder(ctx context.Context, input OrderCreateInput) (*domain.Order, error) {
	if input.User == "" || input.Telegram == "" || strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("user, telegram and description are required", nil)
	}
	if input.Price <= 0 {
		return nil, apperrors.NewValidationError("price must be positive", map[string]any{"price": input.Price})
	}

	user, err := s.resolveUser(ctx, input.User)
	if err != nil {
		return nil, err
	}
	if !user.IsVerified {
		return nil, apperrors.NewUnverified("user is not verified")
	}

	category, err := s.categories.GetByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", map[string]any{"category_id": input.CategoryID})
		}
		return nil, apperrors.MapError(err)
	}
	if _, ok := category.FindService(input.Service); !ok {
		return nil, apperrors.NewNotFound("service", map[string]any{
			"category_id": category.ID,
			"service":     input.Service,
		})
	}

	order := &domain.Order{
		UserID:      user.ID,
		Telegram:    input.Telegram,
		Description: strings.TrimSpace(input.Description),
		CategoryID:  category.ID,
		Service:     input.Service,
		Price:       input.Price,
		Status:      domain.OrderStatusAwaitingPayment,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventOrderCreated,
		OrderID: order.ID,
		Actor:   events.Actor{ID: user.ID, Role: user.Role},
		Payload: events.OrderCreatedPayload{
			UserID:     order.UserID,
			Telegram:   order.Telegram,
			CategoryID: order.CategoryID,
			Service:    order.Service,
			Price:      order.Price,
		},
	})
	return order, nil
}

// TakeOrder claims a paid order for the acting admin. The claim is a single
// conditional update so two concurrent takes cannot both win.
func (s *OrderService) TakeOrder(ctx context.Context, admin *domain.User, orderID string) (*domain.Order, error) {
	if admin == nil || !admin.Role.IsStaff() {
		return nil, apperrors.NewForbidden("administrative role required")
	}
	if err := validateOrderID(orderID); err != nil {
		return nil, err
	}

	order, err := s.orders.ClaimPaid(ctx, orderID, admin.ID)
	if err == nil {
		s.publishEvent(ctx, events.Event{
			Type:    events.EventOrderTaken,
			OrderID: order.ID,
			Actor:   events.Actor{ID: admin.ID, Role: admin.Role},
			Payload: events.OrderTakenPayload{Telegram: order.Telegram, AdminID: admin.ID},
		})
		return order, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	// The claim matched nothing: distinguish a missing order from one that
	// left the paid state.
	existing, getErr := s.orders.GetByID(ctx, orderID)
	if getErr != nil {
		if errors.Is(getErr, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("order", map[string]any{"order_id": orderID})
		}
		return nil, apperrors.MapError(getErr)
	}
	return nil, apperrors.NewInvalidState("order is not paid", map[string]any{
		"order_id": orderID,
		"status":   existing.Status,
	})
}

// CancelOrder cancels an order on behalf of its owning user.
func (s *OrderService) CancelOrder(ctx context.Context, callerID, orderID string) (*domain.Order, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != callerID {
		return nil, apperrors.NewForbidden("cannot cancel another user's order")
	}
	if order.Status.IsTerminal() {
		return nil, apperrors.NewInvalidState("order already finalized", map[string]any{"status": order.Status})
	}

	oldStatus := order.Status
	order.Status = domain.OrderStatusCanceled
	order.Closed = true
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventOrderCanceled,
		OrderID: order.ID,
		Actor:   events.Actor{ID: callerID, Role: domain.RoleUser},
		Payload: events.OrderStatusChangedPayload{
			Telegram:  order.Telegram,
			OldStatus: oldStatus,
			NewStatus: order.Status,
		},
	})
	return order, nil
}

// TransitionStatus applies a workflow-validated status change.
func (s *OrderService) TransitionStatus(ctx context.Context, actor *domain.User, orderID string, next domain.OrderStatus) (*domain.Order, error) {
	if actor == nil || !actor.Role.IsStaff() {
		return nil, apperrors.NewForbidden("administrative role required")
	}
	if !domain.IsValidOrderStatus(next) {
		return nil, apperrors.NewValidationError("unknown order status", map[string]any{"status": next})
	}
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(order.Status, next) {
		return nil, apperrors.NewInvalidState("transition not allowed", map[string]any{
			"from": order.Status,
			"to":   next,
		})
	}
	return s.applyStatus(ctx, actor, order, next, false)
}

// OverrideStatus sets any known status, bypassing the transition table. This
// is the explicit administrative override and is restricted to the owner.
func (s *OrderService) OverrideStatus(ctx context.Context, actor *domain.User, orderID string, next domain.OrderStatus) (*domain.Order, error) {
	if actor == nil || actor.Role != domain.RoleOwner {
		return nil, apperrors.NewForbidden("owner role required")
	}
	if !domain.IsValidOrderStatus(next) {
		return nil, apperrors.NewValidationError("unknown order status", map[string]any{"status": next})
	}
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.applyStatus(ctx, actor, order, next, true)
}

func (s *OrderService) applyStatus(ctx context.Context, actor *domain.User, order *domain.Order, next domain.OrderStatus, override bool) (*domain.Order, error) {
	oldStatus := order.Status
	order.Status = next
	order.Closed = next.IsTerminal()
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventOrderStatusChanged,
		OrderID: order.ID,
		Actor:   events.Actor{ID: actor.ID, Role: actor.Role},
		Payload: events.OrderStatusChangedPayload{
			Telegram:  order.Telegram,
			OldStatus: oldStatus,
			NewStatus: next,
			Override:  override,
		},
	})
	return order, nil
}

// UpdateOrder lets the owning user change the contact handle and description.
// Price and status are immutable here.
func (s *OrderService) UpdateOrder(ctx context.Context, callerID, orderID string, input OrderUpdateInput) (*domain.Order, error) {
	if err := validateOrderID(orderID); err != nil {
		return nil, err
	}
	if input.Telegram == "" {
		return nil, apperrors.NewValidationError("telegram is required", nil)
	}

	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != callerID {
		return nil, apperrors.NewForbidden("cannot update another user's order")
	}

	contact, err := s.users.GetByTelegram(ctx, input.Telegram)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"telegram": input.Telegram})
		}
		return nil, apperrors.MapError(err)
	}

	order.UserID = contact.ID
	order.Telegram = input.Telegram
	if input.Description != nil && strings.TrimSpace(*input.Description) != "" {
		order.Description = strings.TrimSpace(*input.Description)
	}
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, apperrors.MapError(err)
	}
	return order, nil
}

// ListPaidOrders returns the administrative view of all paid orders.
func (s *OrderService) ListPaidOrders(ctx context.Context) ([]OrderProjection, error) {
	orders, err := s.orders.ListWithFilter(ctx, repository.OrderFilter{
		Statuses: []domain.OrderStatus{domain.OrderStatusPaid},
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.projectAll(ctx, orders, true), nil
}

// ListWorkOrders returns orders the acting admin is working through.
func (s *OrderService) ListWorkOrders(ctx context.Context, adminID string) ([]OrderProjection, error) {
	orders, err := s.orders.ListWithFilter(ctx, repository.OrderFilter{
		AdminID:  &adminID,
		Statuses: domain.WorkStatuses(),
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.projectAll(ctx, orders, true), nil
}

// ListPersonalOrders returns the owning user's orders.
func (s *OrderService) ListPersonalOrders(ctx context.Context, userID string) ([]OrderProjection, error) {
	orders, err := s.orders.ListWithFilter(ctx, repository.OrderFilter{UserID: &userID})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.projectAll(ctx, orders, false), nil
}

// GetOrderDetail returns a single order projected for the caller. Staff see
// any order with the discounted price; users see only their own.
func (s *OrderService) GetOrderDetail(ctx context.Context, caller *domain.User, orderID string) (*OrderProjection, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !caller.Role.IsStaff() && order.UserID != caller.ID {
		return nil, apperrors.NewForbidden("access denied")
	}
	projection := s.project(ctx, order, caller.Role.IsStaff())
	return &projection, nil
}

// OrderNotificationView pairs an order with its owner's display name.
type OrderNotificationView struct {
	Order domain.Order
	User  string
}

// GetOrderNotification returns the order together with the resolved owner
// name, for rendering user-facing notifications. A vanished owner becomes
// the unknown-user sentinel.
func (s *OrderService) GetOrderNotification(ctx context.Context, orderID string) (*OrderNotificationView, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	owner := UnknownUserName
	if user, err := s.users.GetByID(ctx, order.UserID); err == nil {
		owner = user.Handle
	}
	return &OrderNotificationView{Order: *order, User: owner}, nil
}

// ListOrdersForUser is the owner-side projection of one user's orders.
func (s *OrderService) ListOrdersForUser(ctx context.Context, userID string) ([]OrderProjection, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, apperrors.MapError(err)
	}
	orders, err := s.orders.ListWithFilter(ctx, repository.OrderFilter{UserID: &userID})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.projectAll(ctx, orders, false), nil
}

func (s *OrderService) resolveUser(ctx context.Context, idOrHandle string) (*domain.User, error) {
	if uuid.Validate(idOrHandle) == nil {
		user, err := s.users.GetByID(ctx, idOrHandle)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
	}
	user, err := s.users.GetByHandle(ctx, idOrHandle)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user": idOrHandle})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

func (s *OrderService) getOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	if err := validateOrderID(orderID); err != nil {
		return nil, err
	}
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("order", map[string]any{"order_id": orderID})
		}
		return nil, apperrors.MapError(err)
	}
	return order, nil
}

func validateOrderID(orderID string) error {
	if uuid.Validate(orderID) != nil {
		return apperrors.NewValidationError("invalid order id", map[string]any{"order_id": orderID})
	}
	return nil
}

func (s *OrderService) projectAll(ctx context.Context, orders []domain.Order, withDiscount bool) []OrderProjection {
	projections := make([]OrderProjection, 0, len(orders))
	for i := range orders {
		projections = append(projections, s.project(ctx, &orders[i], withDiscount))
	}
	return projections
}

// project builds the read view field by field, resolving identifiers to
// display names. A vanished owner becomes the unknown-user sentinel; a
// vanished admin falls back to the raw identifier.
func (s *OrderService) project(ctx context.Context, order *domain.Order, withDiscount bool) OrderProjection {
	projection := OrderProjection{
		ID:          order.ID,
		User:        UnknownUserName,
		Telegram:    order.Telegram,
		Description: order.Description,
		Category:    order.CategoryID,
		Service:     order.Service,
		Price:       order.Price,
		Status:      order.Status,
		Closed:      order.Closed,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}

	if owner, err := s.users.GetByID(ctx, order.UserID); err == nil {
		projection.User = owner.Handle
	}
	if order.AdminID != nil {
		adminName := *order.AdminID
		if admin, err := s.users.GetByID(ctx, *order.AdminID); err == nil {
			adminName = admin.Handle
		}
		projection.Admin = &adminName
	}
	if category, err := s.categories.GetByID(ctx, order.CategoryID); err == nil {
		projection.Category = category.Name
	}
	if withDiscount {
		discounted := DiscountedPrice(order.Price)
		projection.DiscountedPrice = &discounted
	}
	return projection
}

func (s *OrderService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
