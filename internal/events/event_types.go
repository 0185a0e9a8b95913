package events

import (
	"time"

	"github.com/spec-kit/studypay-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventOrderCreated       EventType = "order_created"
	EventOrderStatusChanged EventType = "order_status_changed"
	EventOrderTaken         EventType = "order_taken"
	EventOrderCanceled      EventType = "order_canceled"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	ID   string      `json:"id"`
	Role domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	OrderID   string      `json:"order_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// OrderCreatedPayload payload.
type OrderCreatedPayload struct {
	UserID     string  `json:"user_id"`
	Telegram   string  `json:"telegram"`
	CategoryID string  `json:"category_id"`
	Service    string  `json:"service"`
	Price      float64 `json:"price"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	Telegram  string             `json:"telegram"`
	OldStatus domain.OrderStatus `json:"old_status"`
	NewStatus domain.OrderStatus `json:"new_status"`
	Override  bool               `json:"override,omitempty"`
}

// OrderTakenPayload payload.
type OrderTakenPayload struct {
	Telegram string `json:"telegram"`
	AdminID  string `json:"admin_id"`
}
