package domain

import (
	"testing"

	"github.com/northmart/commerce-platform/shared/events"
	"github.com/northmart/commerce-platform/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []OrderItem {
	return []OrderItem{
		{
			ProductID:   models.GenerateUUID(),
			ProductName: "Mechanical Keyboard",
			Quantity:    1,
			UnitPrice:   models.NewMoney(8000, "USD"),
		},
		{
			ProductID:   models.GenerateUUID(),
			ProductName: "USB Cable",
			Quantity:    2,
			UnitPrice:   models.NewMoney(2000, "USD"),
		},
	}
}

func newTestOrder(t *testing.T) *Order {
	t.Helper()

	order, err := CreateOrder("customer@example.com", "Alex Doe", "1 Main St", testItems())
	require.NoError(t, err)
	order.ClearEvents()
	return order
}

func TestCreateOrder(t *testing.T) {
	t.Run("derives total from items", func(t *testing.T) {
		order, err := CreateOrder("customer@example.com", "Alex Doe", "1 Main St", testItems())
		require.NoError(t, err)

		assert.Equal(t, OrderStatusPending, order.Status)
		assert.Equal(t, int64(12000), order.TotalAmount.Amount)
		assert.Equal(t, "USD", order.TotalAmount.Currency)

		require.Len(t, order.Events(), 1)
		assert.Equal(t, events.OrderCreatedEvent, order.Events()[0].EventType)
	})

	t.Run("rejects empty items", func(t *testing.T) {
		_, err := CreateOrder("customer@example.com", "Alex Doe", "1 Main St", nil)
		assert.Error(t, err)
	})

	t.Run("rejects missing email", func(t *testing.T) {
		_, err := CreateOrder("", "Alex Doe", "1 Main St", testItems())
		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		items := testItems()
		items[0].Quantity = 0

		_, err := CreateOrder("customer@example.com", "Alex Doe", "1 Main St", items)
		assert.Error(t, err)
	})
}

func TestOrder_Confirm(t *testing.T) {
	t.Run("confirms from pending", func(t *testing.T) {
		order := newTestOrder(t)

		require.NoError(t, order.Confirm())
		assert.Equal(t, OrderStatusConfirmed, order.Status)

		require.Len(t, order.Events(), 1)
		assert.Equal(t, events.OrderConfirmedEvent, order.Events()[0].EventType)
	})

	t.Run("confirms from payment processing", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.MarkPaymentProcessing())

		require.NoError(t, order.Confirm())
		assert.Equal(t, OrderStatusConfirmed, order.Status)
	})

	t.Run("confirming twice reports already progressed", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.Confirm())
		order.ClearEvents()

		err := order.Confirm()
		assert.ErrorIs(t, err, ErrOrderAlreadyProgressed)
		assert.Equal(t, OrderStatusConfirmed, order.Status)
		assert.Empty(t, order.Events())
	})

	t.Run("confirming a cancelled order reports already progressed", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.Cancel("payment failed"))
		order.ClearEvents()

		err := order.Confirm()
		assert.ErrorIs(t, err, ErrOrderAlreadyProgressed)
		assert.Equal(t, OrderStatusCancelled, order.Status)
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("cancels a pending order", func(t *testing.T) {
		order := newTestOrder(t)

		require.NoError(t, order.Cancel("card declined"))
		assert.Equal(t, OrderStatusCancelled, order.Status)

		require.Len(t, order.Events(), 1)
		assert.Equal(t, events.OrderCancelledEvent, order.Events()[0].EventType)
	})

	t.Run("cannot cancel a delivered order", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.Confirm())
		require.NoError(t, order.Ship("TRK-1"))
		require.NoError(t, order.Deliver())
		order.ClearEvents()

		err := order.Cancel("too late")
		assert.ErrorIs(t, err, ErrOrderAlreadyProgressed)
		assert.Equal(t, OrderStatusDelivered, order.Status)
	})
}

func TestOrder_ShipDeliver(t *testing.T) {
	t.Run("full lifecycle", func(t *testing.T) {
		order := newTestOrder(t)

		require.NoError(t, order.MarkPaymentProcessing())
		require.NoError(t, order.Confirm())
		require.NoError(t, order.Ship("TRK-42"))
		require.NotNil(t, order.TrackingNumber)
		assert.Equal(t, "TRK-42", *order.TrackingNumber)

		require.NoError(t, order.Deliver())
		assert.Equal(t, OrderStatusDelivered, order.Status)
		assert.True(t, order.IsTerminal())
	})

	t.Run("cannot ship an unconfirmed order", func(t *testing.T) {
		order := newTestOrder(t)
		assert.Error(t, order.Ship("TRK-1"))
	})

	t.Run("requires a tracking number", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.Confirm())
		assert.Error(t, order.Ship(""))
	})

	t.Run("cannot deliver before shipping", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.Confirm())
		assert.Error(t, order.Deliver())
	})
}

func TestOrder_MarkRefunded(t *testing.T) {
	t.Run("refunds a confirmed order", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.Confirm())
		order.ClearEvents()

		require.NoError(t, order.MarkRefunded())
		assert.Equal(t, OrderStatusRefunded, order.Status)

		require.Len(t, order.Events(), 1)
		assert.Equal(t, events.OrderRefundedEvent, order.Events()[0].EventType)
	})

	t.Run("cannot refund a pending order", func(t *testing.T) {
		order := newTestOrder(t)

		err := order.MarkRefunded()
		assert.ErrorIs(t, err, ErrOrderAlreadyProgressed)
	})
}
