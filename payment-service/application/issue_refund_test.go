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

func TestIssueRefund_Execute(t *testing.T) {
	paymentID := "550e8400-e29b-41d4-a716-446655440030"

	completedPayment := func(t *testing.T) *domain.Payment {
		t.Helper()
		payment := pendingPayment(t)
		require.NoError(t, payment.Complete("tx_1"))
		payment.ClearEvents()
		return payment
	}

	t.Run("partial refund", func(t *testing.T) {
		payment := completedPayment(t)

		mockRepo := mocks.NewMockPaymentRepository(t)
		mockRepo.EXPECT().FindByID(mock.Anything, models.ID(paymentID)).Return(payment, nil).Once()
		mockRepo.EXPECT().SaveRefund(mock.Anything, payment, mock.AnythingOfType("*domain.Refund")).Return(nil).Once()

		useCase := NewIssueRefund(mockRepo)

		result, err := useCase.Execute(context.Background(), &IssueRefundCommand{
			PaymentID: paymentID,
			Amount:    4000,
			Currency:  "USD",
			Reason:    "damaged item",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, result.RefundID)

		assert.Equal(t, domain.PaymentStatusCompleted, payment.Status)
		assert.Equal(t, int64(4000), payment.RefundedAmount.Amount)
	})

	t.Run("full refund flips the payment", func(t *testing.T) {
		payment := completedPayment(t)

		mockRepo := mocks.NewMockPaymentRepository(t)
		mockRepo.EXPECT().FindByID(mock.Anything, models.ID(paymentID)).Return(payment, nil).Once()
		mockRepo.EXPECT().SaveRefund(mock.Anything, payment, mock.AnythingOfType("*domain.Refund")).Return(nil).Once()

		useCase := NewIssueRefund(mockRepo)

		_, err := useCase.Execute(context.Background(), &IssueRefundCommand{
			PaymentID: paymentID,
			Amount:    12000,
			Currency:  "USD",
			Reason:    "order cancelled",
		})
		require.NoError(t, err)

		assert.Equal(t, domain.PaymentStatusRefunded, payment.Status)
	})

	t.Run("refund exceeding balance is rejected without a write", func(t *testing.T) {
		payment := completedPayment(t)

		mockRepo := mocks.NewMockPaymentRepository(t)
		mockRepo.EXPECT().FindByID(mock.Anything, models.ID(paymentID)).Return(payment, nil).Once()

		useCase := NewIssueRefund(mockRepo)

		result, err := useCase.Execute(context.Background(), &IssueRefundCommand{
			PaymentID: paymentID,
			Amount:    20000,
			Currency:  "USD",
			Reason:    "too much",
		})
		assert.ErrorIs(t, err, domain.ErrRefundExceedsBalance)
		assert.Nil(t, result)
	})

	t.Run("non-positive amount is rejected", func(t *testing.T) {
		mockRepo := mocks.NewMockPaymentRepository(t)

		useCase := NewIssueRefund(mockRepo)

		_, err := useCase.Execute(context.Background(), &IssueRefundCommand{
			PaymentID: paymentID,
			Amount:    0,
			Currency:  "USD",
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "refund amount must be positive")
	})
}
