package application_test

import (
	"context"
	"testing"

	"github.com/northmart/commerce-platform/notification-service/application"
	"github.com/northmart/commerce-platform/notification-service/mocks"
	"github.com/northmart/commerce-platform/shared/events"
	"github.com/northmart/commerce-platform/shared/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func orderConfirmedEvent() *events.Event {
	orderID := models.GenerateUUID()
	return events.NewEvent(orderID, events.OrderConfirmedEvent, events.OrderConfirmedData{
		OrderID:       orderID,
		CustomerEmail: "shopper@example.com",
	})
}

func TestSendNotification_Execute(t *testing.T) {
	logger := zap.NewNop()

	t.Run("sends email for a confirmed order", func(t *testing.T) {
		event := orderConfirmedEvent()

		sender := mocks.NewMockSender(t)
		processedEvents := mocks.NewMockProcessedEventStore(t)

		processedEvents.EXPECT().
			Record(mock.Anything, event.ID, application.HandlerID).
			Return(nil).
			Once()

		var sentRecipient, sentSubject string
		sender.EXPECT().
			Send(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(ctx context.Context, recipient, subject, body string) {
				sentRecipient = recipient
				sentSubject = subject
			}).
			Return(nil).
			Once()

		uc := application.NewSendNotification(sender, processedEvents, logger)
		err := uc.Execute(context.Background(), event)

		require.NoError(t, err)
		assert.Equal(t, "shopper@example.com", sentRecipient)
		assert.Equal(t, "Your order is confirmed", sentSubject)
	})

	t.Run("duplicate delivery acks without a second email", func(t *testing.T) {
		event := orderConfirmedEvent()

		sender := mocks.NewMockSender(t)
		processedEvents := mocks.NewMockProcessedEventStore(t)

		processedEvents.EXPECT().
			Record(mock.Anything, event.ID, application.HandlerID).
			Return(events.ErrAlreadyProcessed).
			Once()

		uc := application.NewSendNotification(sender, processedEvents, logger)
		err := uc.Execute(context.Background(), event)

		require.NoError(t, err)
		sender.AssertNotCalled(t, "Send")
	})

	t.Run("ledger failure surfaces for redelivery", func(t *testing.T) {
		event := orderConfirmedEvent()

		sender := mocks.NewMockSender(t)
		processedEvents := mocks.NewMockProcessedEventStore(t)

		processedEvents.EXPECT().
			Record(mock.Anything, event.ID, application.HandlerID).
			Return(errors.New("connection reset")).
			Once()

		uc := application.NewSendNotification(sender, processedEvents, logger)
		err := uc.Execute(context.Background(), event)

		require.Error(t, err)
		sender.AssertNotCalled(t, "Send")
	})

	t.Run("sender failure surfaces for redelivery", func(t *testing.T) {
		event := orderConfirmedEvent()

		sender := mocks.NewMockSender(t)
		processedEvents := mocks.NewMockProcessedEventStore(t)

		processedEvents.EXPECT().
			Record(mock.Anything, event.ID, application.HandlerID).
			Return(nil).
			Once()
		sender.EXPECT().
			Send(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("smtp unavailable")).
			Once()

		uc := application.NewSendNotification(sender, processedEvents, logger)
		err := uc.Execute(context.Background(), event)

		require.Error(t, err)
	})

	t.Run("event without a template acks with no work", func(t *testing.T) {
		orderID := models.GenerateUUID()
		event := events.NewEvent(orderID, events.OrderDeliveredEvent, events.OrderDeliveredData{
			OrderID:       orderID,
			CustomerEmail: "shopper@example.com",
		})

		sender := mocks.NewMockSender(t)
		processedEvents := mocks.NewMockProcessedEventStore(t)

		uc := application.NewSendNotification(sender, processedEvents, logger)
		err := uc.Execute(context.Background(), event)

		require.NoError(t, err)
		sender.AssertNotCalled(t, "Send")
		processedEvents.AssertNotCalled(t, "Record")
	})

	t.Run("refund notice goes to the paying customer", func(t *testing.T) {
		paymentID := models.GenerateUUID()
		event := events.NewEvent(paymentID, events.PaymentRefundCompletedEvent, events.PaymentRefundCompletedData{
			RefundID:      models.GenerateUUID(),
			PaymentID:     paymentID,
			OrderID:       models.GenerateUUID(),
			CustomerEmail: "shopper@example.com",
			Amount:        models.NewMoney(2500, "USD"),
			Reason:        "damaged item",
		})

		sender := mocks.NewMockSender(t)
		processedEvents := mocks.NewMockProcessedEventStore(t)

		processedEvents.EXPECT().
			Record(mock.Anything, event.ID, application.HandlerID).
			Return(nil).
			Once()

		var sentRecipient, sentBody string
		sender.EXPECT().
			Send(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(ctx context.Context, recipient, subject, body string) {
				sentRecipient = recipient
				sentBody = body
			}).
			Return(nil).
			Once()

		uc := application.NewSendNotification(sender, processedEvents, logger)
		err := uc.Execute(context.Background(), event)

		require.NoError(t, err)
		assert.Equal(t, "shopper@example.com", sentRecipient)
		assert.Contains(t, sentBody, "damaged item")
	})
}
