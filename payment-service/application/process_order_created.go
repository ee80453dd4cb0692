package application

import (
	"context"

	"github.com/northmart/commerce-platform/shared/events"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ProcessOrderCreated consumes order.created for the payment side audit
// trail. Payments are created by an explicit command, not automatically on
// order creation, so this handler only observes.
type ProcessOrderCreated struct {
	logger *zap.Logger
}

// NewProcessOrderCreated creates a new ProcessOrderCreated use case
func NewProcessOrderCreated(logger *zap.Logger) *ProcessOrderCreated {
	return &ProcessOrderCreated{
		logger: logger,
	}
}

// Execute handles the order.created event
func (uc *ProcessOrderCreated) Execute(ctx context.Context, event *events.Event) error {
	var data events.OrderCreatedData
	if err := event.UnmarshalPayload(&data); err != nil {
		return errors.Wrap(err, "failed to unmarshal order created data")
	}

	uc.logger.Info("order created, awaiting payment command",
		zap.String("order_id", data.OrderID.String()),
		zap.String("customer_email", data.CustomerEmail),
		zap.Int64("total_amount", data.TotalAmount.Amount),
		zap.String("currency", data.TotalAmount.Currency),
	)

	return nil
}
