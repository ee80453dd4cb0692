package handlers

import (
	"context"

	"github.com/northmart/commerce-platform/order-service/application"
	"github.com/northmart/commerce-platform/shared/events"
)

// OrderEventHandlers handles the events the order service subscribes to
type OrderEventHandlers struct {
	processPaymentResult *application.ProcessPaymentResult
}

// NewOrderEventHandlers creates new order event handlers
func NewOrderEventHandlers(processPaymentResult *application.ProcessPaymentResult) *OrderEventHandlers {
	return &OrderEventHandlers{
		processPaymentResult: processPaymentResult,
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *OrderEventHandlers) HandlerID() string {
	return application.HandlerID
}

// Handle implements the events.EventHandler interface
func (h *OrderEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	switch event.EventType {
	case events.PaymentCreatedEvent,
		events.PaymentCompletedEvent,
		events.PaymentFailedEvent,
		events.PaymentRefundedEvent:
		return h.processPaymentResult.Execute(ctx, event)
	default:
		// Unknown event type, ignore
		return nil
	}
}
