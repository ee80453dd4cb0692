package infrastructure

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/northmart/commerce-platform/shared/events"
	"github.com/northmart/commerce-platform/shared/models"
	"github.com/northmart/commerce-platform/shared/outbox"
	"github.com/pkg/errors"
)

// PostgresOutboxStore implements outbox.Store using PostgreSQL
type PostgresOutboxStore struct {
	db *sqlx.DB
}

// NewPostgresOutboxStore creates a new PostgresOutboxStore
func NewPostgresOutboxStore(db *sqlx.DB) *PostgresOutboxStore {
	return &PostgresOutboxStore{db: db}
}

var _ outbox.Store = (*PostgresOutboxStore)(nil)

// postgresOutboxEntry represents an outbox row in the database
type postgresOutboxEntry struct {
	ID          string     `db:"id"`
	AggregateID string     `db:"aggregate_id"`
	Topic       string     `db:"topic"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	Attempts    int        `db:"attempts"`
	CreatedAt   time.Time  `db:"created_at"`
	PublishedAt *time.Time `db:"published_at"`
}

// InsertOutboxTx writes events into the outbox table inside the caller's
// transaction. Repositories call this alongside the aggregate write so that
// the event row commits if and only if the state change commits.
func InsertOutboxTx(ctx context.Context, tx *sqlx.Tx, evts ...*events.Event) error {
	query := `
		INSERT INTO outbox_events (
			id, aggregate_id, topic, payload, status, attempts, created_at
		) VALUES (
			:id, :aggregate_id, :topic, :payload, :status, :attempts, :created_at
		)`

	for _, event := range evts {
		entry, err := outbox.NewEntry(event)
		if err != nil {
			return err
		}

		_, err = tx.NamedExecContext(ctx, query, &postgresOutboxEntry{
			ID:          entry.ID.String(),
			AggregateID: entry.AggregateID.String(),
			Topic:       entry.Topic,
			Payload:     entry.Payload,
			Status:      string(entry.Status),
			Attempts:    entry.Attempts,
			CreatedAt:   entry.CreatedAt,
		})
		if err != nil {
			return errors.Wrap(err, "failed to insert outbox entry")
		}
	}

	return nil
}

// CollectPending returns unpublished entries in commit order. Publishing is
// at least once: a concurrent dispatcher may pick the same entry, and
// consumers deduplicate by event ID.
func (s *PostgresOutboxStore) CollectPending(ctx context.Context, limit int) ([]*outbox.Entry, error) {
	query := `
		SELECT id, aggregate_id, topic, payload, status, attempts, created_at, published_at
		FROM outbox_events
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2`

	var rows []postgresOutboxEntry
	if err := s.db.SelectContext(ctx, &rows, query, string(outbox.StatusPending), limit); err != nil {
		return nil, errors.Wrap(err, "failed to collect pending outbox entries")
	}

	entries := make([]*outbox.Entry, len(rows))
	for i, row := range rows {
		entries[i] = &outbox.Entry{
			ID:          models.ID(row.ID),
			AggregateID: models.ID(row.AggregateID),
			Topic:       row.Topic,
			Payload:     row.Payload,
			Status:      outbox.Status(row.Status),
			Attempts:    row.Attempts,
			CreatedAt:   row.CreatedAt,
			PublishedAt: row.PublishedAt,
		}
	}

	return entries, nil
}

// MarkPublished settles an entry after broker acknowledgment
func (s *PostgresOutboxStore) MarkPublished(ctx context.Context, id models.ID) error {
	query := `
		UPDATE outbox_events
		SET status = $1, published_at = $2
		WHERE id = $3 AND status = $4`

	_, err := s.db.ExecContext(ctx, query,
		string(outbox.StatusPublished), time.Now(), id.String(), string(outbox.StatusPending))
	if err != nil {
		return errors.Wrap(err, "failed to mark outbox entry published")
	}

	return nil
}

// MarkFailed increments the attempt counter; the entry stays pending
func (s *PostgresOutboxStore) MarkFailed(ctx context.Context, id models.ID) error {
	query := `UPDATE outbox_events SET attempts = attempts + 1 WHERE id = $1`

	if _, err := s.db.ExecContext(ctx, query, id.String()); err != nil {
		return errors.Wrap(err, "failed to mark outbox entry failed")
	}

	return nil
}
