package dto

import (
	"time"

	"github.com/spec-kit/studypay-service/internal/domain"
)

// OrderCreateRequest payload for new orders. User accepts an account
// identifier or a handle.
type OrderCreateRequest struct {
	User        string  `json:"user"`
	Telegram    string  `json:"telegram"`
	Description string  `json:"description"`
	CategoryID  string  `json:"category_id"`
	Service     string  `json:"service"`
	Price       float64 `json:"price"`
}

// OrderUpdateRequest carries the user-editable order fields.
type OrderUpdateRequest struct {
	Telegram    string  `json:"telegram"`
	Description *string `json:"description,omitempty"`
}

// StatusChangeRequest payload for administrative status moves.
type StatusChangeRequest struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// OrderResponse is the wire shape of a stored order.
type OrderResponse struct {
	ID          string             `json:"id"`
	UserID      string             `json:"user_id"`
	Telegram    string             `json:"telegram"`
	Description string             `json:"description"`
	CategoryID  string             `json:"category_id"`
	Service     string             `json:"service"`
	Price       float64            `json:"price"`
	Status      domain.OrderStatus `json:"status"`
	AdminID     *string            `json:"admin_id,omitempty"`
	Closed      bool               `json:"closed"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// OrderNotificationResponse is an order paired with its owner's display name.
type OrderNotificationResponse struct {
	OrderResponse
	User string `json:"user"`
}

// NewOrderNotificationResponse maps an order and its resolved owner name.
func NewOrderNotificationResponse(order *domain.Order, user string) OrderNotificationResponse {
	return OrderNotificationResponse{OrderResponse: NewOrderResponse(order), User: user}
}

// NewOrderResponse maps a domain order onto the wire shape.
func NewOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:          order.ID,
		UserID:      order.UserID,
		Telegram:    order.Telegram,
		Description: order.Description,
		CategoryID:  order.CategoryID,
		Service:     order.Service,
		Price:       order.Price,
		Status:      order.Status,
		AdminID:     order.AdminID,
		Closed:      order.Closed,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}
