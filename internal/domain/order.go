package domain

import "time"

// OrderStatus enumerates lifecycle states for service orders.
type OrderStatus string

const (
	OrderStatusAwaitingPayment OrderStatus = "awaiting_payment"
	OrderStatusPaid            OrderStatus = "paid"
	OrderStatusInProgress      OrderStatus = "in_progress"
	OrderStatusInReview        OrderStatus = "in_review"
	OrderStatusNeedsRevision   OrderStatus = "needs_revision"
	OrderStatusReadyForHandoff OrderStatus = "ready_for_handoff"
	OrderStatusCompleted       OrderStatus = "completed"
	OrderStatusCanceled        OrderStatus = "canceled"
	OrderStatusRefunded        OrderStatus = "refunded"
)

// IsValidOrderStatus reports whether s is a known status value.
func IsValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusAwaitingPayment, OrderStatusPaid, OrderStatusInProgress,
		OrderStatusInReview, OrderStatusNeedsRevision, OrderStatusReadyForHandoff,
		OrderStatusCompleted, OrderStatusCanceled, OrderStatusRefunded:
		return true
	}
	return false
}

// IsTerminal reports whether s admits no further transitions.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCanceled || s == OrderStatusRefunded
}

var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusAwaitingPayment: {OrderStatusPaid, OrderStatusCanceled},
	OrderStatusPaid:            {OrderStatusInProgress, OrderStatusCanceled, OrderStatusRefunded},
	OrderStatusInProgress:      {OrderStatusInReview, OrderStatusCanceled, OrderStatusRefunded},
	OrderStatusInReview:        {OrderStatusNeedsRevision, OrderStatusReadyForHandoff, OrderStatusRefunded},
	OrderStatusNeedsRevision:   {OrderStatusInReview, OrderStatusRefunded},
	OrderStatusReadyForHandoff: {OrderStatusCompleted, OrderStatusRefunded},
	OrderStatusCompleted:       {},
	OrderStatusCanceled:        {},
	OrderStatusRefunded:        {},
}

// CanTransition reports whether the workflow permits moving from current to next.
func CanTransition(current, next OrderStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// WorkStatuses are the states an assigned admin actively works through.
func WorkStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusInProgress,
		OrderStatusInReview,
		OrderStatusNeedsRevision,
		OrderStatusReadyForHandoff,
	}
}

// Order is the aggregate for paid service requests.
type Order struct {
	ID          string
	UserID      string
	Telegram    string
	Description string
	CategoryID  string
	Service     string
	Price       float64
	Status      OrderStatus
	AdminID     *string
	Closed      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
