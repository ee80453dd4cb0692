package infrastructure

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/northmart/commerce-platform/order-service/domain"
	"github.com/northmart/commerce-platform/shared/events"
	sharedinfra "github.com/northmart/commerce-platform/shared/infrastructure"
	"github.com/northmart/commerce-platform/shared/models"
	"github.com/pkg/errors"
)

// PostgresOrderRepository implements OrderRepository using PostgreSQL.
// Items are stored as a jsonb column; the order row carries the derived
// total and the optimistic-lock version.
type PostgresOrderRepository struct {
	db *sqlx.DB
}

// NewPostgresOrderRepository creates a new PostgresOrderRepository
func NewPostgresOrderRepository(db *sqlx.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

var _ domain.OrderRepository = (*PostgresOrderRepository)(nil)

// postgresOrder represents an order in the database
type postgresOrder struct {
	ID              string    `db:"id"`
	CustomerEmail   string    `db:"customer_email"`
	CustomerName    string    `db:"customer_name"`
	ShippingAddress string    `db:"shipping_address"`
	Status          string    `db:"status"`
	TotalAmount     int64     `db:"total_amount"`
	Currency        string    `db:"currency"`
	Items           []byte    `db:"items"`
	TrackingNumber  *string   `db:"tracking_number"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
	Version         int       `db:"version"`
}

// Save persists the order and its staged events atomically
func (r *PostgresOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if err := r.writeOrder(ctx, tx, order); err != nil {
		return err
	}

	if err := sharedinfra.InsertOutboxTx(ctx, tx, order.Events()...); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	order.ClearEvents()
	return nil
}

// Update persists an event-driven transition: the idempotency-ledger row,
// the version-checked order update and the outbox rows commit together. A
// ledger hit rolls everything back and surfaces events.ErrAlreadyProcessed.
func (r *PostgresOrderRepository) Update(ctx context.Context, order *domain.Order, processedEventID models.ID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if err := sharedinfra.RecordProcessedEventTx(ctx, tx, processedEventID, "order-service-payment-consumer"); err != nil {
		return err
	}

	if err := r.updateOrder(ctx, tx, order); err != nil {
		return err
	}

	if err := sharedinfra.InsertOutboxTx(ctx, tx, order.Events()...); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	order.ClearEvents()
	return nil
}

// writeOrder dispatches to insert or update based on the staged events
func (r *PostgresOrderRepository) writeOrder(ctx context.Context, tx *sqlx.Tx, order *domain.Order) error {
	for _, event := range order.Events() {
		if event.EventType == events.OrderCreatedEvent {
			return r.insertOrder(ctx, tx, order)
		}
	}
	return r.updateOrder(ctx, tx, order)
}

// insertOrder inserts a new order
func (r *PostgresOrderRepository) insertOrder(ctx context.Context, tx *sqlx.Tx, order *domain.Order) error {
	query := `
		INSERT INTO orders (
			id, customer_email, customer_name, shipping_address, status,
			total_amount, currency, items, tracking_number,
			created_at, updated_at, version
		) VALUES (
			:id, :customer_email, :customer_name, :shipping_address, :status,
			:total_amount, :currency, :items, :tracking_number,
			:created_at, :updated_at, :version
		)`

	pg, err := r.toPostgres(order)
	if err != nil {
		return err
	}

	if _, err := tx.NamedExecContext(ctx, query, pg); err != nil {
		return errors.Wrap(err, "failed to insert order")
	}

	return nil
}

// updateOrder updates an existing order with optimistic locking
func (r *PostgresOrderRepository) updateOrder(ctx context.Context, tx *sqlx.Tx, order *domain.Order) error {
	query := `
		UPDATE orders
		SET status = :status, tracking_number = :tracking_number,
			updated_at = :updated_at, version = :version
		WHERE id = :id AND version = :old_version`

	res, err := tx.NamedExecContext(ctx, query, map[string]interface{}{
		"id":              order.ID.String(),
		"status":          string(order.Status),
		"tracking_number": order.TrackingNumber,
		"updated_at":      order.Timestamps.UpdatedAt,
		"version":         order.Version.Value,
		"old_version":     order.Version.Value - 1,
	})
	if err != nil {
		return errors.Wrap(err, "failed to update order")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to check order update")
	}

	if affected == 0 {
		return models.ErrVersionConflict
	}

	return nil
}

// FindByID finds an order by ID
func (r *PostgresOrderRepository) FindByID(ctx context.Context, id models.ID) (*domain.Order, error) {
	query := `
		SELECT id, customer_email, customer_name, shipping_address, status,
			   total_amount, currency, items, tracking_number,
			   created_at, updated_at, version
		FROM orders
		WHERE id = $1`

	var pg postgresOrder
	err := r.db.GetContext(ctx, &pg, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrOrderNotFound
		}
		return nil, errors.Wrap(err, "failed to find order")
	}

	return r.toDomain(&pg)
}

// toPostgres converts domain order to postgres model
func (r *PostgresOrderRepository) toPostgres(order *domain.Order) (*postgresOrder, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal order items")
	}

	return &postgresOrder{
		ID:              order.ID.String(),
		CustomerEmail:   order.CustomerEmail,
		CustomerName:    order.CustomerName,
		ShippingAddress: order.ShippingAddress,
		Status:          string(order.Status),
		TotalAmount:     order.TotalAmount.Amount,
		Currency:        order.TotalAmount.Currency,
		Items:           items,
		TrackingNumber:  order.TrackingNumber,
		CreatedAt:       order.Timestamps.CreatedAt,
		UpdatedAt:       order.Timestamps.UpdatedAt,
		Version:         order.Version.Value,
	}, nil
}

// toDomain converts postgres model to domain order
func (r *PostgresOrderRepository) toDomain(pg *postgresOrder) (*domain.Order, error) {
	id, err := models.NewID(pg.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID")
	}

	var items []domain.OrderItem
	if err := json.Unmarshal(pg.Items, &items); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal order items")
	}

	return &domain.Order{
		ID:              id,
		CustomerEmail:   pg.CustomerEmail,
		CustomerName:    pg.CustomerName,
		ShippingAddress: pg.ShippingAddress,
		Status:          domain.OrderStatus(pg.Status),
		TotalAmount:     models.NewMoney(pg.TotalAmount, pg.Currency),
		Items:           items,
		TrackingNumber:  pg.TrackingNumber,
		Timestamps: models.Timestamps{
			CreatedAt: pg.CreatedAt,
			UpdatedAt: pg.UpdatedAt,
		},
		Version: models.Version{Value: pg.Version},
	}, nil
}
