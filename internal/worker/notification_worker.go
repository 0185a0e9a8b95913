package worker

import (
	"github.com/spec-kit/studypay-service/internal/events"
	"github.com/spec-kit/studypay-service/internal/service"
)

// StartNotificationWorker subscribes the notification service to order events.
func StartNotificationWorker(notificationService *service.NotificationService, dispatcher events.Dispatcher) {
	if notificationService == nil || dispatcher == nil {
		return
	}
	notificationService.RegisterHandlers(dispatcher)
}
