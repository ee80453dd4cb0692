package application

import (
	"context"

	"github.com/northmart/commerce-platform/order-service/domain"
	"github.com/northmart/commerce-platform/shared/models"
	"github.com/pkg/errors"
)

// CreateOrderCommand represents the command to create an order
type CreateOrderCommand struct {
	CustomerEmail   string             `json:"customer_email"`
	CustomerName    string             `json:"customer_name"`
	ShippingAddress string             `json:"shipping_address"`
	Items           []OrderItemCommand `json:"items"`
}

// OrderItemCommand represents one order line in the command
type OrderItemCommand struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	Currency    string `json:"currency"`
}

// CreateOrderResponse represents the response after creating an order
type CreateOrderResponse struct {
	OrderID     string `json:"order_id"`
	TotalAmount int64  `json:"total_amount"`
	Currency    string `json:"currency"`
}

// CreateOrder use case
type CreateOrder struct {
	orderRepository domain.OrderRepository
}

// NewCreateOrder creates a new CreateOrder use case
func NewCreateOrder(orderRepository domain.OrderRepository) *CreateOrder {
	return &CreateOrder{
		orderRepository: orderRepository,
	}
}

// Execute creates the order and stages order.created through the outbox
func (uc *CreateOrder) Execute(ctx context.Context, cmd *CreateOrderCommand) (*CreateOrderResponse, error) {
	if err := uc.validateCommand(cmd); err != nil {
		return nil, errors.Wrap(err, "invalid command")
	}

	items := make([]domain.OrderItem, len(cmd.Items))
	for i, item := range cmd.Items {
		productID, err := models.NewID(item.ProductID)
		if err != nil {
			return nil, errors.Wrap(err, "invalid product ID")
		}

		items[i] = domain.OrderItem{
			ProductID:   productID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   models.NewMoney(item.UnitPrice, item.Currency),
		}
	}

	order, err := domain.CreateOrder(cmd.CustomerEmail, cmd.CustomerName, cmd.ShippingAddress, items)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create order")
	}

	if err := uc.orderRepository.Save(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to save order")
	}

	return &CreateOrderResponse{
		OrderID:     order.ID.String(),
		TotalAmount: order.TotalAmount.Amount,
		Currency:    order.TotalAmount.Currency,
	}, nil
}

// validateCommand validates the create order command
func (uc *CreateOrder) validateCommand(cmd *CreateOrderCommand) error {
	if cmd.CustomerEmail == "" {
		return errors.New("customer email is required")
	}

	if len(cmd.Items) == 0 {
		return errors.New("at least one item is required")
	}

	currency := cmd.Items[0].Currency
	for _, item := range cmd.Items {
		if item.Quantity <= 0 {
			return errors.New("item quantity must be positive")
		}
		if item.UnitPrice <= 0 {
			return errors.New("item unit price must be positive")
		}
		if item.Currency != currency {
			return errors.New("all items must share one currency")
		}
	}

	return nil
}
