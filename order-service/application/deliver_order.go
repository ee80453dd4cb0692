package application

import (
	"context"

	"github.com/northmart/commerce-platform/order-service/domain"
	"github.com/northmart/commerce-platform/shared/models"
	"github.com/pkg/errors"
)

// DeliverOrderCommand represents the command to mark an order delivered
type DeliverOrderCommand struct {
	OrderID string `json:"order_id"`
}

// DeliverOrder use case
type DeliverOrder struct {
	orderRepository domain.OrderRepository
}

// NewDeliverOrder creates a new DeliverOrder use case
func NewDeliverOrder(orderRepository domain.OrderRepository) *DeliverOrder {
	return &DeliverOrder{
		orderRepository: orderRepository,
	}
}

// Execute marks the order delivered and stages order.delivered through the
// outbox
func (uc *DeliverOrder) Execute(ctx context.Context, cmd *DeliverOrderCommand) error {
	orderID, err := models.NewID(cmd.OrderID)
	if err != nil {
		return errors.Wrap(err, "invalid order ID")
	}

	order, err := uc.orderRepository.FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	if err := order.Deliver(); err != nil {
		return err
	}

	if err := uc.orderRepository.Save(ctx, order); err != nil {
		return errors.Wrap(err, "failed to save order")
	}

	return nil
}
