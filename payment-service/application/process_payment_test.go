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

func TestProcessPayment_Execute(t *testing.T) {
	paymentID := "550e8400-e29b-41d4-a716-446655440030"

	t.Run("moves a pending payment to processing", func(t *testing.T) {
		payment := pendingPayment(t)

		mockRepo := mocks.NewMockPaymentRepository(t)
		mockRepo.EXPECT().FindByID(mock.Anything, models.ID(paymentID)).Return(payment, nil).Once()
		mockRepo.EXPECT().Save(mock.Anything, payment).Return(nil).Once()

		useCase := NewProcessPayment(mockRepo)

		err := useCase.Execute(context.Background(), &ProcessPaymentCommand{
			PaymentID: paymentID,
		})
		require.NoError(t, err)

		assert.Equal(t, domain.PaymentStatusProcessing, payment.Status)
	})

	t.Run("completed payment cannot go back to processing", func(t *testing.T) {
		payment := pendingPayment(t)
		require.NoError(t, payment.Complete("tx_1"))
		payment.ClearEvents()

		mockRepo := mocks.NewMockPaymentRepository(t)
		mockRepo.EXPECT().FindByID(mock.Anything, models.ID(paymentID)).Return(payment, nil).Once()

		useCase := NewProcessPayment(mockRepo)

		err := useCase.Execute(context.Background(), &ProcessPaymentCommand{
			PaymentID: paymentID,
		})
		assert.Error(t, err)
	})

	t.Run("invalid payment id is rejected", func(t *testing.T) {
		mockRepo := mocks.NewMockPaymentRepository(t)

		useCase := NewProcessPayment(mockRepo)

		err := useCase.Execute(context.Background(), &ProcessPaymentCommand{
			PaymentID: "not-a-uuid",
		})
		assert.Error(t, err)
	})
}
