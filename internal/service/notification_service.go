package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/studypay-service/internal/domain"
	"github.com/spec-kit/studypay-service/internal/events"
)

// NotificationService turns order events into telegram messages. Delivery is
// best effort: a missing chat link is logged, never surfaced to the caller.
type NotificationService struct {
	messenger Messenger
	logger    *zap.Logger
}

func NewNotificationService(messenger Messenger, logger *zap.Logger) *NotificationService {
	return &NotificationService{messenger: messenger, logger: logger}
}

// RegisterHandlers subscribes the service to order events.
func (s *NotificationService) RegisterHandlers(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventOrderCreated, s.handleOrderCreated)
	dispatcher.Subscribe(events.EventOrderTaken, s.handleOrderTaken)
	dispatcher.Subscribe(events.EventOrderStatusChanged, s.handleStatusChanged)
	dispatcher.Subscribe(events.EventOrderCanceled, s.handleStatusChanged)
}

func (s *NotificationService) handleOrderCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.OrderCreatedPayload)
	if !ok {
		return nil
	}
	text := fmt.Sprintf("Your order for %q has been created and is awaiting payment.", payload.Service)
	s.send(ctx, payload.Telegram, event, text)
	return nil
}

func (s *NotificationService) handleOrderTaken(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.OrderTakenPayload)
	if !ok {
		return nil
	}
	s.send(ctx, payload.Telegram, event, "An administrator has started working on your order.")
	return nil
}

func (s *NotificationService) handleStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.OrderStatusChangedPayload)
	if !ok {
		return nil
	}
	s.send(ctx, payload.Telegram, event, statusMessage(payload.NewStatus))
	return nil
}

func (s *NotificationService) send(ctx context.Context, telegram string, event events.Event, text string) {
	if s.messenger == nil || telegram == "" {
		return
	}
	if err := s.messenger.Notify(ctx, telegram, text); err != nil {
		s.logger.Warn("order notification not delivered",
			zap.String("order_id", event.OrderID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err),
		)
	}
}

func statusMessage(status domain.OrderStatus) string {
	switch status {
	case domain.OrderStatusAwaitingPayment:
		return "Your order is awaiting payment."
	case domain.OrderStatusPaid:
		return "Payment received. Your order is queued for an administrator."
	case domain.OrderStatusInProgress:
		return "Your order is now in progress."
	case domain.OrderStatusInReview:
		return "Your order has been submitted for review."
	case domain.OrderStatusNeedsRevision:
		return "Your order needs revisions and is back in work."
	case domain.OrderStatusReadyForHandoff:
		return "Your order is ready for handoff."
	case domain.OrderStatusCompleted:
		return "Your order is completed. Thank you!"
	case domain.OrderStatusCanceled:
		return "Your order has been canceled."
	case domain.OrderStatusRefunded:
		return "Your order has been refunded."
	default:
		return fmt.Sprintf("Your order status changed to %s.", status)
	}
}
