package handlers

import (
	"context"

	"github.com/northmart/commerce-platform/payment-service/application"
	"github.com/northmart/commerce-platform/shared/events"
)

// PaymentEventHandlers handles the events the payment service subscribes to
type PaymentEventHandlers struct {
	processOrderCreated *application.ProcessOrderCreated
}

// NewPaymentEventHandlers creates new payment event handlers
func NewPaymentEventHandlers(processOrderCreated *application.ProcessOrderCreated) *PaymentEventHandlers {
	return &PaymentEventHandlers{
		processOrderCreated: processOrderCreated,
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *PaymentEventHandlers) HandlerID() string {
	return "payment-service-event-handler"
}

// Handle implements the events.EventHandler interface
func (h *PaymentEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	switch event.EventType {
	case events.OrderCreatedEvent:
		return h.processOrderCreated.Execute(ctx, event)
	default:
		// Unknown event type, ignore
		return nil
	}
}
