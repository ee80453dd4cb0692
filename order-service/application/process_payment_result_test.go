package application

import (
	"context"
	"testing"

	"github.com/northmart/commerce-platform/order-service/domain"
	"github.com/northmart/commerce-platform/order-service/mocks"
	"github.com/northmart/commerce-platform/shared/events"
	"github.com/northmart/commerce-platform/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func pendingOrder(t *testing.T) *domain.Order {
	t.Helper()

	order, err := domain.CreateOrder("customer@example.com", "Alex Doe", "1 Main St", []domain.OrderItem{
		{
			ProductID:   models.GenerateUUID(),
			ProductName: "Mechanical Keyboard",
			Quantity:    1,
			UnitPrice:   models.NewMoney(12000, "USD"),
		},
	})
	require.NoError(t, err)
	order.ClearEvents()
	return order
}

func paymentCompletedEvent(orderID models.ID) *events.Event {
	return events.NewEvent(models.GenerateUUID(), events.PaymentCompletedEvent, events.PaymentCompletedData{
		PaymentID: models.GenerateUUID(),
		OrderID:   orderID,
		Amount:    models.NewMoney(12000, "USD"),
	})
}

func TestProcessPaymentResult_Execute(t *testing.T) {
	logger := zap.NewNop()

	t.Run("payment completed confirms the order", func(t *testing.T) {
		order := pendingOrder(t)
		event := paymentCompletedEvent(order.ID)

		mockRepo := mocks.NewMockOrderRepository(t)
		mockDLQ := mocks.NewMockDeadLetterStore(t)
		mockRepo.EXPECT().FindByID(mock.Anything, order.ID).Return(order, nil).Once()
		mockRepo.EXPECT().Update(mock.Anything, order, event.ID).Return(nil).Once()

		useCase := NewProcessPaymentResult(mockRepo, mockDLQ, logger)

		err := useCase.Execute(context.Background(), event)
		require.NoError(t, err)

		assert.Equal(t, domain.OrderStatusConfirmed, order.Status)
	})

	t.Run("payment created moves the order to payment processing", func(t *testing.T) {
		order := pendingOrder(t)
		event := events.NewEvent(models.GenerateUUID(), events.PaymentCreatedEvent, events.PaymentCreatedData{
			PaymentID:     models.GenerateUUID(),
			OrderID:       order.ID,
			CustomerEmail: "customer@example.com",
			Amount:        models.NewMoney(12000, "USD"),
			Method:        "card",
		})

		mockRepo := mocks.NewMockOrderRepository(t)
		mockDLQ := mocks.NewMockDeadLetterStore(t)
		mockRepo.EXPECT().FindByID(mock.Anything, order.ID).Return(order, nil).Once()
		mockRepo.EXPECT().Update(mock.Anything, order, event.ID).Return(nil).Once()

		useCase := NewProcessPaymentResult(mockRepo, mockDLQ, logger)

		require.NoError(t, useCase.Execute(context.Background(), event))
		assert.Equal(t, domain.OrderStatusPaymentProcessing, order.Status)
	})

	t.Run("payment failed cancels the order with the reason", func(t *testing.T) {
		order := pendingOrder(t)
		event := events.NewEvent(models.GenerateUUID(), events.PaymentFailedEvent, events.PaymentFailedData{
			PaymentID: models.GenerateUUID(),
			OrderID:   order.ID,
			Reason:    "card declined",
		})

		mockRepo := mocks.NewMockOrderRepository(t)
		mockDLQ := mocks.NewMockDeadLetterStore(t)
		mockRepo.EXPECT().FindByID(mock.Anything, order.ID).Return(order, nil).Once()
		mockRepo.EXPECT().Update(mock.Anything, order, event.ID).Return(nil).Once()

		useCase := NewProcessPaymentResult(mockRepo, mockDLQ, logger)

		require.NoError(t, useCase.Execute(context.Background(), event))
		assert.Equal(t, domain.OrderStatusCancelled, order.Status)
	})

	t.Run("payment refunded marks the order refunded", func(t *testing.T) {
		order := pendingOrder(t)
		require.NoError(t, order.Confirm())
		order.ClearEvents()

		event := events.NewEvent(models.GenerateUUID(), events.PaymentRefundedEvent, events.PaymentRefundedData{
			PaymentID: models.GenerateUUID(),
			OrderID:   order.ID,
		})

		mockRepo := mocks.NewMockOrderRepository(t)
		mockDLQ := mocks.NewMockDeadLetterStore(t)
		mockRepo.EXPECT().FindByID(mock.Anything, order.ID).Return(order, nil).Once()
		mockRepo.EXPECT().Update(mock.Anything, order, event.ID).Return(nil).Once()

		useCase := NewProcessPaymentResult(mockRepo, mockDLQ, logger)

		require.NoError(t, useCase.Execute(context.Background(), event))
		assert.Equal(t, domain.OrderStatusRefunded, order.Status)
	})

	t.Run("duplicate delivery acks on ledger hit", func(t *testing.T) {
		order := pendingOrder(t)
		event := paymentCompletedEvent(order.ID)

		mockRepo := mocks.NewMockOrderRepository(t)
		mockDLQ := mocks.NewMockDeadLetterStore(t)
		mockRepo.EXPECT().FindByID(mock.Anything, order.ID).Return(order, nil).Once()
		mockRepo.EXPECT().Update(mock.Anything, order, event.ID).Return(events.ErrAlreadyProcessed).Once()

		useCase := NewProcessPaymentResult(mockRepo, mockDLQ, logger)

		// The handler must not surface an error; the message should be acked.
		assert.NoError(t, useCase.Execute(context.Background(), event))
	})

	t.Run("already progressed order acks without a write", func(t *testing.T) {
		order := pendingOrder(t)
		require.NoError(t, order.Confirm())
		order.ClearEvents()

		event := paymentCompletedEvent(order.ID)

		mockRepo := mocks.NewMockOrderRepository(t)
		mockDLQ := mocks.NewMockDeadLetterStore(t)
		mockRepo.EXPECT().FindByID(mock.Anything, order.ID).Return(order, nil).Once()

		useCase := NewProcessPaymentResult(mockRepo, mockDLQ, logger)

		assert.NoError(t, useCase.Execute(context.Background(), event))
	})

	t.Run("unknown order dead-letters after retries", func(t *testing.T) {
		orderID := models.GenerateUUID()
		event := paymentCompletedEvent(orderID)

		mockRepo := mocks.NewMockOrderRepository(t)
		mockDLQ := mocks.NewMockDeadLetterStore(t)
		mockRepo.EXPECT().FindByID(mock.Anything, orderID).Return(nil, domain.ErrOrderNotFound).Times(5)
		mockDLQ.EXPECT().Push(mock.Anything, event, HandlerID, "order not found after retries").Return(nil).Once()

		useCase := NewProcessPaymentResult(mockRepo, mockDLQ, logger)

		// Dead-lettered events are acked, not retried forever.
		assert.NoError(t, useCase.Execute(context.Background(), event))
	})

	t.Run("transient lookup failure surfaces for redelivery", func(t *testing.T) {
		orderID := models.GenerateUUID()
		event := paymentCompletedEvent(orderID)

		mockRepo := mocks.NewMockOrderRepository(t)
		mockDLQ := mocks.NewMockDeadLetterStore(t)
		mockRepo.EXPECT().FindByID(mock.Anything, orderID).Return(nil, assert.AnError).Once()

		useCase := NewProcessPaymentResult(mockRepo, mockDLQ, logger)

		assert.Error(t, useCase.Execute(context.Background(), event))
	})

	t.Run("version conflict surfaces for redelivery", func(t *testing.T) {
		order := pendingOrder(t)
		event := paymentCompletedEvent(order.ID)

		mockRepo := mocks.NewMockOrderRepository(t)
		mockDLQ := mocks.NewMockDeadLetterStore(t)
		mockRepo.EXPECT().FindByID(mock.Anything, order.ID).Return(order, nil).Once()
		mockRepo.EXPECT().Update(mock.Anything, order, event.ID).Return(models.ErrVersionConflict).Once()

		useCase := NewProcessPaymentResult(mockRepo, mockDLQ, logger)

		assert.Error(t, useCase.Execute(context.Background(), event))
	})
}
