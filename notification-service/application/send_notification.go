package application

import (
	"context"

	"github.com/northmart/commerce-platform/shared/events"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Sender delivers a rendered notification
type Sender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// SendNotification consumes events and sends one email per occurrence. The
// ledger record happens before the send: a redelivered event acks without a
// second email. A crash between record and send loses at most one email,
// which beats spamming the customer on every redelivery.
type SendNotification struct {
	sender          Sender
	processedEvents events.ProcessedEventStore
	logger          *zap.Logger
}

// NewSendNotification creates a new SendNotification use case
func NewSendNotification(
	sender Sender,
	processedEvents events.ProcessedEventStore,
	logger *zap.Logger,
) *SendNotification {
	return &SendNotification{
		sender:          sender,
		processedEvents: processedEvents,
		logger:          logger,
	}
}

// HandlerID names this consumer in the idempotency ledger
const HandlerID = "notification-service-event-handler"

// Execute renders and sends the notification for one event
func (uc *SendNotification) Execute(ctx context.Context, event *events.Event) error {
	msg, err := renderNotification(event)
	if err != nil {
		return errors.Wrap(err, "failed to render notification")
	}

	if msg == nil {
		return nil
	}

	err = uc.processedEvents.Record(ctx, event.ID, HandlerID)
	if errors.Is(err, events.ErrAlreadyProcessed) {
		uc.logger.Debug("duplicate event, notification already sent",
			zap.String("event_id", event.ID.String()),
			zap.String("event_type", event.EventType))
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to record processed event")
	}

	if err := uc.sender.Send(ctx, msg.Recipient, msg.Subject, msg.Body); err != nil {
		return errors.Wrap(err, "failed to send notification")
	}

	uc.logger.Info("notification sent",
		zap.String("event_type", event.EventType),
		zap.String("recipient", msg.Recipient))

	return nil
}
