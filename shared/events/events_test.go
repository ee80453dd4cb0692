package events_test

import (
	"encoding/json"
	"testing"

	"github.com/northmart/commerce-platform/shared/events"
	"github.com/northmart/commerce-platform/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopic_Matches(t *testing.T) {
	tests := []struct {
		name    string
		topic   string
		pattern string
		want    bool
	}{
		{"exact match", "payment.completed", "payment.completed", true},
		{"exact mismatch", "payment.completed", "payment.failed", false},
		{"single wildcard segment", "payment.completed", "payment.*", true},
		{"wildcard does not cross segments", "payment.refund.completed", "payment.*", false},
		{"hash matches everything", "order.shipped", "#", true},
		{"prefix hash", "payment.refund.completed", "payment.#", true},
		{"suffix hash", "payment.refund.completed", "#completed", true},
		{"contains hash", "payment.refund.completed", "#refund#", true},
		{"segment count mismatch", "payment.completed", "payment.completed.v2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topic, err := events.NewTopic(tt.topic)
			require.NoError(t, err)
			assert.Equal(t, tt.want, topic.Matches(events.Topic(tt.pattern)))
		})
	}
}

func TestNewTopic_Empty(t *testing.T) {
	_, err := events.NewTopic("")
	assert.ErrorIs(t, err, events.ErrInvalidTopic)
}

func TestNewEvent(t *testing.T) {
	aggregateID := models.GenerateUUID()
	event := events.NewEvent(aggregateID, events.OrderCreatedEvent, events.OrderCreatedData{
		OrderID:       aggregateID,
		CustomerEmail: "shopper@example.com",
	})

	assert.NotEmpty(t, event.ID.String())
	assert.Equal(t, aggregateID, event.AggregateID)
	assert.Equal(t, events.OrderCreatedEvent, event.EventType)
	assert.Equal(t, events.Topic(events.OrderCreatedEvent), event.Topic)
	assert.Equal(t, events.SchemaVersion, event.Version)
	assert.False(t, event.Timestamp.IsZero())
}

func TestEvent_UnmarshalPayload(t *testing.T) {
	aggregateID := models.GenerateUUID()
	data := events.OrderCancelledData{
		OrderID:       aggregateID,
		CustomerEmail: "shopper@example.com",
		Reason:        "payment failed",
	}

	t.Run("typed payload", func(t *testing.T) {
		event := events.NewEvent(aggregateID, events.OrderCancelledEvent, data)

		var got events.OrderCancelledData
		require.NoError(t, event.UnmarshalPayload(&got))
		assert.Equal(t, data, got)
	})

	t.Run("raw json payload after a wire round trip", func(t *testing.T) {
		raw, err := json.Marshal(data)
		require.NoError(t, err)
		event := events.NewEvent(aggregateID, events.OrderCancelledEvent, json.RawMessage(raw))

		var got events.OrderCancelledData
		require.NoError(t, event.UnmarshalPayload(&got))
		assert.Equal(t, data, got)
	})

	t.Run("non-pointer receiver is rejected", func(t *testing.T) {
		event := events.NewEvent(aggregateID, events.OrderCancelledEvent, data)

		var got events.OrderCancelledData
		err := event.UnmarshalPayload(got)
		assert.ErrorIs(t, err, events.ErrInvalidReceiver)
	})
}

func TestEvent_JSONRoundTrip(t *testing.T) {
	aggregateID := models.GenerateUUID()
	event := events.NewEvent(aggregateID, events.PaymentCompletedEvent, events.PaymentCompletedData{
		PaymentID:             models.GenerateUUID(),
		OrderID:               aggregateID,
		Amount:                models.NewMoney(12000, "USD"),
		ExternalTransactionID: "tx_1",
	}).WithMetadata("source", "payment-service")

	raw, err := event.ToJSON()
	require.NoError(t, err)

	decoded, err := events.FromJSON(raw)
	require.NoError(t, err)

	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, event.EventType, decoded.EventType)
	assert.Equal(t, event.Version, decoded.Version)

	source, ok := decoded.Metadata.Get("source")
	require.True(t, ok)
	assert.Equal(t, "payment-service", source)

	var got events.PaymentCompletedData
	require.NoError(t, decoded.UnmarshalPayload(&got))
	assert.Equal(t, aggregateID, got.OrderID)
	assert.Equal(t, "tx_1", got.ExternalTransactionID)
}
