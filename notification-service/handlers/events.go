package handlers

import (
	"context"

	"github.com/northmart/commerce-platform/notification-service/application"
	"github.com/northmart/commerce-platform/shared/events"
)

// NotificationEventHandlers routes subscribed events to the notification use case
type NotificationEventHandlers struct {
	sendNotification *application.SendNotification
}

// NewNotificationEventHandlers creates new event handlers for the notification service
func NewNotificationEventHandlers(sendNotification *application.SendNotification) *NotificationEventHandlers {
	return &NotificationEventHandlers{
		sendNotification: sendNotification,
	}
}

// HandlerID returns the unique handler identifier
func (h *NotificationEventHandlers) HandlerID() string {
	return application.HandlerID
}

// Handle processes incoming events
func (h *NotificationEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	switch event.EventType {
	case events.OrderCreatedEvent,
		events.OrderConfirmedEvent,
		events.OrderCancelledEvent,
		events.OrderShippedEvent,
		events.PaymentFailedEvent,
		events.PaymentRefundCompletedEvent,
		events.ProductInterestEvent,
		events.VendorFollowUpRequestedEvent,
		events.InquiryCreatedEvent:
		return h.sendNotification.Execute(ctx, event)
	default:
		// Not a notification-worthy event, ack and move on
		return nil
	}
}
