package infrastructure

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/northmart/commerce-platform/shared/events"
	"github.com/northmart/commerce-platform/shared/models"
	"github.com/pkg/errors"
)

// PostgresProcessedEventStore implements the idempotency ledger using
// PostgreSQL. (event_id, handler_id) is the primary key, so a redelivered
// event inserts zero rows and surfaces events.ErrAlreadyProcessed.
type PostgresProcessedEventStore struct {
	db *sqlx.DB
}

// NewPostgresProcessedEventStore creates a new PostgresProcessedEventStore
func NewPostgresProcessedEventStore(db *sqlx.DB) *PostgresProcessedEventStore {
	return &PostgresProcessedEventStore{db: db}
}

var _ events.ProcessedEventStore = (*PostgresProcessedEventStore)(nil)

// Record marks an event as processed for a handler
func (s *PostgresProcessedEventStore) Record(ctx context.Context, eventID models.ID, handlerID string) error {
	res, err := s.db.ExecContext(ctx, processedEventInsertQuery,
		eventID.String(), handlerID, time.Now())
	if err != nil {
		return errors.Wrap(err, "failed to record processed event")
	}

	return processedEventResult(res)
}

// RecordProcessedEventTx is the transactional variant used by repositories
// that must record the ledger row atomically with the state mutation.
func RecordProcessedEventTx(ctx context.Context, tx *sqlx.Tx, eventID models.ID, handlerID string) error {
	res, err := tx.ExecContext(ctx, processedEventInsertQuery,
		eventID.String(), handlerID, time.Now())
	if err != nil {
		return errors.Wrap(err, "failed to record processed event")
	}

	return processedEventResult(res)
}

const processedEventInsertQuery = `
	INSERT INTO processed_events (event_id, handler_id, processed_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (event_id, handler_id) DO NOTHING`

func processedEventResult(res interface{ RowsAffected() (int64, error) }) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to check processed event insert")
	}

	if affected == 0 {
		return events.ErrAlreadyProcessed
	}

	return nil
}
