package application

import (
	"context"

	"github.com/northmart/commerce-platform/order-service/domain"
	"github.com/northmart/commerce-platform/shared/models"
	"github.com/pkg/errors"
)

// GetOrderQuery represents the query to get an order
type GetOrderQuery struct {
	OrderID string `json:"order_id"`
}

// GetOrder use case
type GetOrder struct {
	orderRepository domain.OrderRepository
}

// NewGetOrder creates a new GetOrder use case
func NewGetOrder(orderRepository domain.OrderRepository) *GetOrder {
	return &GetOrder{
		orderRepository: orderRepository,
	}
}

// Execute gets an order by ID
func (uc *GetOrder) Execute(ctx context.Context, query *GetOrderQuery) (*domain.Order, error) {
	orderID, err := models.NewID(query.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID")
	}

	order, err := uc.orderRepository.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return order, nil
}
