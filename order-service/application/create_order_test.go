package application

import (
	"context"
	"testing"

	"github.com/northmart/commerce-platform/order-service/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func validCreateOrderCommand() *CreateOrderCommand {
	return &CreateOrderCommand{
		CustomerEmail:   "customer@example.com",
		CustomerName:    "Alex Doe",
		ShippingAddress: "1 Main St",
		Items: []OrderItemCommand{
			{
				ProductID:   "550e8400-e29b-41d4-a716-446655440001",
				ProductName: "Mechanical Keyboard",
				Quantity:    1,
				UnitPrice:   8000,
				Currency:    "USD",
			},
			{
				ProductID:   "550e8400-e29b-41d4-a716-446655440002",
				ProductName: "USB Cable",
				Quantity:    2,
				UnitPrice:   2000,
				Currency:    "USD",
			},
		},
	}
}

func TestCreateOrder_Execute(t *testing.T) {
	tests := []struct {
		name          string
		command       func() *CreateOrderCommand
		setupMocks    func(*mocks.MockOrderRepository)
		expectedError string
	}{
		{
			name:    "successful order creation",
			command: validCreateOrderCommand,
			setupMocks: func(repo *mocks.MockOrderRepository) {
				repo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).Once()
			},
		},
		{
			name: "missing customer email",
			command: func() *CreateOrderCommand {
				cmd := validCreateOrderCommand()
				cmd.CustomerEmail = ""
				return cmd
			},
			setupMocks:    func(repo *mocks.MockOrderRepository) {},
			expectedError: "customer email is required",
		},
		{
			name: "no items",
			command: func() *CreateOrderCommand {
				cmd := validCreateOrderCommand()
				cmd.Items = nil
				return cmd
			},
			setupMocks:    func(repo *mocks.MockOrderRepository) {},
			expectedError: "at least one item is required",
		},
		{
			name: "zero quantity",
			command: func() *CreateOrderCommand {
				cmd := validCreateOrderCommand()
				cmd.Items[0].Quantity = 0
				return cmd
			},
			setupMocks:    func(repo *mocks.MockOrderRepository) {},
			expectedError: "item quantity must be positive",
		},
		{
			name: "mixed currencies",
			command: func() *CreateOrderCommand {
				cmd := validCreateOrderCommand()
				cmd.Items[1].Currency = "EUR"
				return cmd
			},
			setupMocks:    func(repo *mocks.MockOrderRepository) {},
			expectedError: "all items must share one currency",
		},
		{
			name: "invalid product ID",
			command: func() *CreateOrderCommand {
				cmd := validCreateOrderCommand()
				cmd.Items[0].ProductID = "not-a-uuid"
				return cmd
			},
			setupMocks:    func(repo *mocks.MockOrderRepository) {},
			expectedError: "invalid product ID",
		},
		{
			name:    "repository save error",
			command: validCreateOrderCommand,
			setupMocks: func(repo *mocks.MockOrderRepository) {
				repo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.Order")).
					Return(errors.New("database error")).Once()
			},
			expectedError: "failed to save order",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockOrderRepository(t)
			tt.setupMocks(mockRepo)

			useCase := NewCreateOrder(mockRepo)

			result, err := useCase.Execute(context.Background(), tt.command())

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.NotEmpty(t, result.OrderID)
				assert.Equal(t, int64(12000), result.TotalAmount)
				assert.Equal(t, "USD", result.Currency)
			}
		})
	}
}
