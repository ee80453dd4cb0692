package application

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/northmart/commerce-platform/order-service/domain"
	"github.com/northmart/commerce-platform/shared/events"
	"github.com/northmart/commerce-platform/shared/models"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ProcessPaymentResult consumes payment lifecycle events and advances the
// order accordingly. The ledger insert and the order update commit in one
// transaction, so a redelivered event either hits the ledger or reapplies
// nothing.
type ProcessPaymentResult struct {
	orderRepository domain.OrderRepository
	deadLetters     events.DeadLetterStore
	logger          *zap.Logger
}

// NewProcessPaymentResult creates a new ProcessPaymentResult use case
func NewProcessPaymentResult(
	orderRepository domain.OrderRepository,
	deadLetters events.DeadLetterStore,
	logger *zap.Logger,
) *ProcessPaymentResult {
	return &ProcessPaymentResult{
		orderRepository: orderRepository,
		deadLetters:     deadLetters,
		logger:          logger,
	}
}

// HandlerID names this consumer in the idempotency ledger and dead-letter
// store
const HandlerID = "order-service-payment-consumer"

// Execute applies one payment event to the referenced order
func (uc *ProcessPaymentResult) Execute(ctx context.Context, event *events.Event) error {
	orderID, reason, err := uc.extractOrderRef(event)
	if err != nil {
		// Undecodable payloads will never succeed; park and ack.
		return uc.deadLetter(ctx, event, err.Error())
	}

	order, err := uc.findOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			// The order never showed up; the event references something this
			// service does not know.
			return uc.deadLetter(ctx, event, "order not found after retries")
		}
		return err
	}

	if err := uc.applyTransition(order, event.EventType, reason); err != nil {
		if errors.Is(err, domain.ErrOrderAlreadyProgressed) {
			uc.logger.Debug("payment event superseded by order state",
				zap.String("order_id", order.ID.String()),
				zap.String("event_type", event.EventType),
				zap.String("order_status", string(order.Status)))
			return nil
		}
		return err
	}

	err = uc.orderRepository.Update(ctx, order, event.ID)
	if errors.Is(err, events.ErrAlreadyProcessed) {
		uc.logger.Debug("duplicate payment event",
			zap.String("event_id", event.ID.String()),
			zap.String("order_id", order.ID.String()))
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to update order")
	}

	return nil
}

// extractOrderRef pulls the order reference out of the supported payloads
func (uc *ProcessPaymentResult) extractOrderRef(event *events.Event) (string, string, error) {
	switch event.EventType {
	case events.PaymentCreatedEvent:
		var data events.PaymentCreatedData
		if err := event.UnmarshalPayload(&data); err != nil {
			return "", "", errors.Wrap(err, "failed to unmarshal payment created data")
		}
		return data.OrderID.String(), "", nil

	case events.PaymentCompletedEvent:
		var data events.PaymentCompletedData
		if err := event.UnmarshalPayload(&data); err != nil {
			return "", "", errors.Wrap(err, "failed to unmarshal payment completed data")
		}
		return data.OrderID.String(), "", nil

	case events.PaymentFailedEvent:
		var data events.PaymentFailedData
		if err := event.UnmarshalPayload(&data); err != nil {
			return "", "", errors.Wrap(err, "failed to unmarshal payment failed data")
		}
		return data.OrderID.String(), data.Reason, nil

	case events.PaymentRefundedEvent:
		var data events.PaymentRefundedData
		if err := event.UnmarshalPayload(&data); err != nil {
			return "", "", errors.Wrap(err, "failed to unmarshal payment refunded data")
		}
		return data.OrderID.String(), "", nil

	default:
		return "", "", errors.Errorf("unsupported event type %s", event.EventType)
	}
}

// findOrder looks up the order with a short bounded retry. The payment event
// can outrun the order row when the create transaction is still in flight.
func (uc *ProcessPaymentResult) findOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	id, err := models.NewID(orderID)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 100 * time.Millisecond
	bo.MaxInterval = 2 * time.Second

	return backoff.Retry(ctx, func() (*domain.Order, error) {
		order, err := uc.orderRepository.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrOrderNotFound) {
				return nil, err
			}
			return nil, backoff.Permanent(err)
		}
		return order, nil
	}, backoff.WithBackOff(bo), backoff.WithMaxTries(5))
}

// applyTransition maps the payment event type onto the order state machine
func (uc *ProcessPaymentResult) applyTransition(order *domain.Order, eventType, reason string) error {
	switch eventType {
	case events.PaymentCreatedEvent:
		return order.MarkPaymentProcessing()
	case events.PaymentCompletedEvent:
		return order.Confirm()
	case events.PaymentFailedEvent:
		if reason == "" {
			reason = "payment failed"
		}
		return order.Cancel(reason)
	case events.PaymentRefundedEvent:
		return order.MarkRefunded()
	default:
		return domain.ErrOrderAlreadyProgressed
	}
}

// deadLetter parks the event and acks the delivery
func (uc *ProcessPaymentResult) deadLetter(ctx context.Context, event *events.Event, reason string) error {
	uc.logger.Warn("dead-lettering payment event",
		zap.String("event_id", event.ID.String()),
		zap.String("event_type", event.EventType),
		zap.String("reason", reason))

	if err := uc.deadLetters.Push(ctx, event, HandlerID, reason); err != nil {
		return errors.Wrap(err, "failed to dead-letter event")
	}

	return nil
}
