package domain

import (
	"testing"

	"github.com/northmart/commerce-platform/shared/events"
	"github.com/northmart/commerce-platform/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPayment(t *testing.T) *Payment {
	t.Helper()

	payment, err := CreatePayment(
		models.GenerateUUID(),
		"customer@example.com",
		models.NewMoney(12000, "USD"),
		PaymentMethodCard,
	)
	require.NoError(t, err)
	payment.ClearEvents()
	return payment
}

func TestCreatePayment(t *testing.T) {
	tests := []struct {
		name          string
		amount        models.Money
		method        PaymentMethod
		expectedError string
	}{
		{
			name:   "valid card payment",
			amount: models.NewMoney(12000, "USD"),
			method: PaymentMethodCard,
		},
		{
			name:   "valid wallet payment",
			amount: models.NewMoney(500, "EUR"),
			method: PaymentMethodWallet,
		},
		{
			name:          "zero amount",
			amount:        models.NewMoney(0, "USD"),
			method:        PaymentMethodCard,
			expectedError: "amount must be positive",
		},
		{
			name:          "negative amount",
			amount:        models.NewMoney(-100, "USD"),
			method:        PaymentMethodCard,
			expectedError: "amount must be positive",
		},
		{
			name:          "unrecognized method",
			amount:        models.NewMoney(100, "USD"),
			method:        PaymentMethod("crypto"),
			expectedError: "unrecognized payment method",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment, err := CreatePayment(models.GenerateUUID(), "customer@example.com", tt.amount, tt.method)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, payment)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, PaymentStatusPending, payment.Status)
			assert.True(t, payment.RefundedAmount.IsZero())

			require.Len(t, payment.Events(), 1)
			assert.Equal(t, events.PaymentCreatedEvent, payment.Events()[0].EventType)
		})
	}
}

func TestPayment_Complete(t *testing.T) {
	t.Run("completes from pending", func(t *testing.T) {
		payment := newTestPayment(t)

		err := payment.Complete("tx_1")
		require.NoError(t, err)

		assert.Equal(t, PaymentStatusCompleted, payment.Status)
		require.NotNil(t, payment.ExternalTransactionID)
		assert.Equal(t, "tx_1", *payment.ExternalTransactionID)
		assert.NotNil(t, payment.CompletedAt)

		require.Len(t, payment.Events(), 1)
		assert.Equal(t, events.PaymentCompletedEvent, payment.Events()[0].EventType)
	})

	t.Run("completes from processing", func(t *testing.T) {
		payment := newTestPayment(t)
		require.NoError(t, payment.Process())
		payment.ClearEvents()

		require.NoError(t, payment.Complete("tx_1"))
		assert.Equal(t, PaymentStatusCompleted, payment.Status)
	})

	t.Run("repeat with same transaction id is a no-op", func(t *testing.T) {
		payment := newTestPayment(t)
		require.NoError(t, payment.Complete("tx_1"))
		payment.ClearEvents()

		versionBefore := payment.Version

		err := payment.Complete("tx_1")
		require.NoError(t, err)

		assert.Equal(t, versionBefore, payment.Version)
		assert.Empty(t, payment.Events())
	})

	t.Run("repeat with different transaction id is rejected", func(t *testing.T) {
		payment := newTestPayment(t)
		require.NoError(t, payment.Complete("tx_1"))
		payment.ClearEvents()

		err := payment.Complete("tx_2")
		assert.ErrorIs(t, err, ErrConflictingConfirmation)

		assert.Equal(t, PaymentStatusCompleted, payment.Status)
		assert.Equal(t, "tx_1", *payment.ExternalTransactionID)
		assert.Empty(t, payment.Events())
	})

	t.Run("cannot complete a failed payment", func(t *testing.T) {
		payment := newTestPayment(t)
		require.NoError(t, payment.Fail("card declined"))
		payment.ClearEvents()

		err := payment.Complete("tx_1")
		assert.Error(t, err)
		assert.Equal(t, PaymentStatusFailed, payment.Status)
	})
}

func TestPayment_Fail(t *testing.T) {
	t.Run("fails from pending", func(t *testing.T) {
		payment := newTestPayment(t)

		err := payment.Fail("card declined")
		require.NoError(t, err)

		assert.Equal(t, PaymentStatusFailed, payment.Status)
		require.NotNil(t, payment.FailureReason)
		assert.Equal(t, "card declined", *payment.FailureReason)

		require.Len(t, payment.Events(), 1)
		assert.Equal(t, events.PaymentFailedEvent, payment.Events()[0].EventType)
	})

	t.Run("cannot fail a completed payment", func(t *testing.T) {
		payment := newTestPayment(t)
		require.NoError(t, payment.Complete("tx_1"))
		payment.ClearEvents()

		err := payment.Fail("too late")
		assert.Error(t, err)
		assert.Equal(t, PaymentStatusCompleted, payment.Status)
		assert.Empty(t, payment.Events())
	})
}

func TestPayment_Refund(t *testing.T) {
	t.Run("partial refund keeps payment completed", func(t *testing.T) {
		payment := newTestPayment(t)
		require.NoError(t, payment.Complete("tx_1"))
		payment.ClearEvents()

		refund, err := payment.Refund(models.NewMoney(4000, "USD"), "damaged item")
		require.NoError(t, err)

		assert.Equal(t, PaymentStatusCompleted, payment.Status)
		assert.Equal(t, int64(4000), payment.RefundedAmount.Amount)
		assert.Equal(t, payment.ID, refund.PaymentID)
		assert.Equal(t, payment.OrderID, refund.OrderID)

		require.Len(t, payment.Events(), 1)
		assert.Equal(t, events.PaymentRefundCompletedEvent, payment.Events()[0].EventType)
	})

	t.Run("full refund flips payment to refunded", func(t *testing.T) {
		payment := newTestPayment(t)
		require.NoError(t, payment.Complete("tx_1"))
		payment.ClearEvents()

		_, err := payment.Refund(models.NewMoney(12000, "USD"), "order cancelled")
		require.NoError(t, err)

		assert.Equal(t, PaymentStatusRefunded, payment.Status)

		require.Len(t, payment.Events(), 2)
		assert.Equal(t, events.PaymentRefundCompletedEvent, payment.Events()[0].EventType)
		assert.Equal(t, events.PaymentRefundedEvent, payment.Events()[1].EventType)
	})

	t.Run("successive partial refunds exhaust the balance", func(t *testing.T) {
		payment := newTestPayment(t)
		require.NoError(t, payment.Complete("tx_1"))

		_, err := payment.Refund(models.NewMoney(7000, "USD"), "first")
		require.NoError(t, err)

		_, err = payment.Refund(models.NewMoney(5000, "USD"), "second")
		require.NoError(t, err)

		assert.Equal(t, PaymentStatusRefunded, payment.Status)
		assert.Equal(t, payment.Amount.Amount, payment.RefundedAmount.Amount)
	})

	t.Run("refund exceeding remaining balance is rejected", func(t *testing.T) {
		payment := newTestPayment(t)
		require.NoError(t, payment.Complete("tx_1"))

		_, err := payment.Refund(models.NewMoney(7000, "USD"), "first")
		require.NoError(t, err)
		payment.ClearEvents()

		refund, err := payment.Refund(models.NewMoney(6000, "USD"), "too much")
		assert.ErrorIs(t, err, ErrRefundExceedsBalance)
		assert.Nil(t, refund)

		assert.Equal(t, int64(7000), payment.RefundedAmount.Amount)
		assert.Empty(t, payment.Events())
	})

	t.Run("cannot refund a pending payment", func(t *testing.T) {
		payment := newTestPayment(t)

		refund, err := payment.Refund(models.NewMoney(100, "USD"), "nope")
		assert.Error(t, err)
		assert.Nil(t, refund)
	})

	t.Run("currency mismatch is rejected", func(t *testing.T) {
		payment := newTestPayment(t)
		require.NoError(t, payment.Complete("tx_1"))

		_, err := payment.Refund(models.NewMoney(100, "EUR"), "wrong currency")
		assert.Error(t, err)
	})
}
