package infrastructure

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/northmart/commerce-platform/shared/events"
	"github.com/pkg/errors"
)

// PostgresDeadLetterStore persists events that exhausted their retries so an
// operator can inspect and replay them. Pushing is a reported failure path,
// never a silent drop.
type PostgresDeadLetterStore struct {
	db *sqlx.DB
}

// NewPostgresDeadLetterStore creates a new PostgresDeadLetterStore
func NewPostgresDeadLetterStore(db *sqlx.DB) *PostgresDeadLetterStore {
	return &PostgresDeadLetterStore{db: db}
}

var _ events.DeadLetterStore = (*PostgresDeadLetterStore)(nil)

// Push stores the full envelope alongside the failing handler and reason
func (s *PostgresDeadLetterStore) Push(ctx context.Context, event *events.Event, handlerID, reason string) error {
	payload, err := event.ToJSON()
	if err != nil {
		return errors.Wrap(err, "failed to serialize dead-lettered event")
	}

	query := `
		INSERT INTO dead_letter_events (event_id, handler_id, topic, payload, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id, handler_id) DO NOTHING`

	_, err = s.db.ExecContext(ctx, query,
		event.ID.String(), handlerID, event.EventType, payload, reason, time.Now())
	if err != nil {
		return errors.Wrap(err, "failed to push dead letter")
	}

	return nil
}
