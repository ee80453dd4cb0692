package application

import (
	"context"

	"github.com/northmart/commerce-platform/order-service/domain"
	"github.com/northmart/commerce-platform/shared/models"
	"github.com/pkg/errors"
)

// ShipOrderCommand represents the command to ship an order
type ShipOrderCommand struct {
	OrderID        string `json:"order_id"`
	TrackingNumber string `json:"tracking_number"`
}

// ShipOrder use case
type ShipOrder struct {
	orderRepository domain.OrderRepository
}

// NewShipOrder creates a new ShipOrder use case
func NewShipOrder(orderRepository domain.OrderRepository) *ShipOrder {
	return &ShipOrder{
		orderRepository: orderRepository,
	}
}

// Execute ships the order and stages order.shipped through the outbox
func (uc *ShipOrder) Execute(ctx context.Context, cmd *ShipOrderCommand) error {
	orderID, err := models.NewID(cmd.OrderID)
	if err != nil {
		return errors.Wrap(err, "invalid order ID")
	}

	order, err := uc.orderRepository.FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	if err := order.Ship(cmd.TrackingNumber); err != nil {
		return err
	}

	if err := uc.orderRepository.Save(ctx, order); err != nil {
		return errors.Wrap(err, "failed to save order")
	}

	return nil
}
