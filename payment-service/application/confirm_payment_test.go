package application

import (
	"context"
	"testing"

	"github.com/northmart/commerce-platform/payment-service/domain"
	"github.com/northmart/commerce-platform/payment-service/mocks"
	"github.com/northmart/commerce-platform/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingPayment(t *testing.T) *domain.Payment {
	t.Helper()

	payment, err := domain.CreatePayment(
		models.GenerateUUID(),
		"customer@example.com",
		models.NewMoney(12000, "USD"),
		domain.PaymentMethodCard,
	)
	require.NoError(t, err)
	payment.ClearEvents()
	return payment
}

func TestConfirmPayment_Execute(t *testing.T) {
	paymentID := "550e8400-e29b-41d4-a716-446655440020"

	t.Run("confirms a pending payment", func(t *testing.T) {
		payment := pendingPayment(t)

		mockRepo := mocks.NewMockPaymentRepository(t)
		mockRepo.EXPECT().FindByID(mock.Anything, models.ID(paymentID)).Return(payment, nil).Once()
		mockRepo.EXPECT().Save(mock.Anything, payment).Return(nil).Once()

		useCase := NewConfirmPayment(mockRepo)

		err := useCase.Execute(context.Background(), &ConfirmPaymentCommand{
			PaymentID:             paymentID,
			ExternalTransactionID: "tx_1",
		})
		require.NoError(t, err)

		assert.Equal(t, domain.PaymentStatusCompleted, payment.Status)
	})

	t.Run("repeated confirmation with same transaction id skips the write", func(t *testing.T) {
		payment := pendingPayment(t)
		require.NoError(t, payment.Complete("tx_1"))
		payment.ClearEvents()

		mockRepo := mocks.NewMockPaymentRepository(t)
		mockRepo.EXPECT().FindByID(mock.Anything, models.ID(paymentID)).Return(payment, nil).Once()

		useCase := NewConfirmPayment(mockRepo)

		err := useCase.Execute(context.Background(), &ConfirmPaymentCommand{
			PaymentID:             paymentID,
			ExternalTransactionID: "tx_1",
		})
		assert.NoError(t, err)
	})

	t.Run("conflicting transaction id surfaces the conflict", func(t *testing.T) {
		payment := pendingPayment(t)
		require.NoError(t, payment.Complete("tx_1"))
		payment.ClearEvents()

		mockRepo := mocks.NewMockPaymentRepository(t)
		mockRepo.EXPECT().FindByID(mock.Anything, models.ID(paymentID)).Return(payment, nil).Once()

		useCase := NewConfirmPayment(mockRepo)

		err := useCase.Execute(context.Background(), &ConfirmPaymentCommand{
			PaymentID:             paymentID,
			ExternalTransactionID: "tx_2",
		})
		assert.ErrorIs(t, err, domain.ErrConflictingConfirmation)
	})

	t.Run("missing transaction id is rejected", func(t *testing.T) {
		mockRepo := mocks.NewMockPaymentRepository(t)

		useCase := NewConfirmPayment(mockRepo)

		err := useCase.Execute(context.Background(), &ConfirmPaymentCommand{
			PaymentID: paymentID,
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "external transaction ID is required")
	})
}
