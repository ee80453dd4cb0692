package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/northmart/commerce-platform/shared/events"
	"github.com/northmart/commerce-platform/shared/models"
	"github.com/pkg/errors"
)

// Status represents the publish state of an outbox entry
type Status string

const (
	StatusPending   Status = "pending"
	StatusPublished Status = "published"
)

// Entry is a serialized event written in the same local transaction as the
// aggregate it belongs to. The dispatcher relays pending entries to the
// broker and marks them published only after broker acknowledgment.
type Entry struct {
	ID          models.ID
	AggregateID models.ID
	Topic       string
	Payload     json.RawMessage
	Status      Status
	Attempts    int
	CreatedAt   time.Time
	PublishedAt *time.Time
}

// NewEntry serializes a domain event into an outbox entry
func NewEntry(event *events.Event) (*Entry, error) {
	payload, err := event.ToJSON()
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize event for outbox")
	}

	return &Entry{
		ID:          event.ID,
		AggregateID: event.AggregateID,
		Topic:       event.EventType,
		Payload:     payload,
		Status:      StatusPending,
		CreatedAt:   event.Timestamp,
	}, nil
}

// Event deserializes the stored envelope
func (e *Entry) Event() (*events.Event, error) {
	event, err := events.FromJSON(e.Payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to deserialize outbox payload")
	}
	return event, nil
}

// Store reads and settles outbox entries. Writing entries happens inside the
// repositories, in the same transaction as the aggregate row.
type Store interface {
	CollectPending(ctx context.Context, limit int) ([]*Entry, error)
	MarkPublished(ctx context.Context, id models.ID) error
	MarkFailed(ctx context.Context, id models.ID) error
}
