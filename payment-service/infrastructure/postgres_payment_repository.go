package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/northmart/commerce-platform/payment-service/domain"
	"github.com/northmart/commerce-platform/shared/events"
	sharedinfra "github.com/northmart/commerce-platform/shared/infrastructure"
	"github.com/northmart/commerce-platform/shared/models"
	"github.com/pkg/errors"
)

// PostgresPaymentRepository implements PaymentRepository using PostgreSQL.
// Every write stages the recorded domain events in the outbox inside the
// same transaction as the payment row.
type PostgresPaymentRepository struct {
	db *sqlx.DB
}

// NewPostgresPaymentRepository creates a new PostgresPaymentRepository
func NewPostgresPaymentRepository(db *sqlx.DB) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{db: db}
}

var _ domain.PaymentRepository = (*PostgresPaymentRepository)(nil)

// postgresPayment represents payment in database
type postgresPayment struct {
	ID                    string     `db:"id"`
	OrderID               string     `db:"order_id"`
	CustomerEmail         string     `db:"customer_email"`
	Amount                int64      `db:"amount"`
	Currency              string     `db:"currency"`
	Method                string     `db:"method"`
	Status                string     `db:"status"`
	ExternalTransactionID *string    `db:"external_transaction_id"`
	FailureReason         *string    `db:"failure_reason"`
	RefundedAmount        int64      `db:"refunded_amount"`
	CompletedAt           *time.Time `db:"completed_at"`
	CreatedAt             time.Time  `db:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at"`
	Version               int        `db:"version"`
}

// Save persists the payment and its staged events atomically
func (r *PostgresPaymentRepository) Save(ctx context.Context, payment *domain.Payment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if err := r.writePayment(ctx, tx, payment); err != nil {
		return err
	}

	if err := sharedinfra.InsertOutboxTx(ctx, tx, payment.Events()...); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	payment.ClearEvents()
	return nil
}

// SaveRefund persists the refund row, the updated payment and the staged
// events in one transaction
func (r *PostgresPaymentRepository) SaveRefund(ctx context.Context, payment *domain.Payment, refund *domain.Refund) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	query := `
		INSERT INTO refunds (id, payment_id, order_id, amount, currency, reason, created_at)
		VALUES (:id, :payment_id, :order_id, :amount, :currency, :reason, :created_at)`

	_, err = tx.NamedExecContext(ctx, query, &postgresRefund{
		ID:        refund.ID.String(),
		PaymentID: refund.PaymentID.String(),
		OrderID:   refund.OrderID.String(),
		Amount:    refund.Amount.Amount,
		Currency:  refund.Amount.Currency,
		Reason:    refund.Reason,
		CreatedAt: refund.CreatedAt,
	})
	if err != nil {
		return errors.Wrap(err, "failed to insert refund")
	}

	if err := r.updatePayment(ctx, tx, payment); err != nil {
		return err
	}

	if err := sharedinfra.InsertOutboxTx(ctx, tx, payment.Events()...); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	payment.ClearEvents()
	return nil
}

// writePayment dispatches to insert or update based on the staged events
func (r *PostgresPaymentRepository) writePayment(ctx context.Context, tx *sqlx.Tx, payment *domain.Payment) error {
	for _, event := range payment.Events() {
		if event.EventType == events.PaymentCreatedEvent {
			return r.insertPayment(ctx, tx, payment)
		}
	}
	return r.updatePayment(ctx, tx, payment)
}

// insertPayment inserts a new payment
func (r *PostgresPaymentRepository) insertPayment(ctx context.Context, tx *sqlx.Tx, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (
			id, order_id, customer_email, amount, currency, method, status,
			external_transaction_id, failure_reason, refunded_amount,
			completed_at, created_at, updated_at, version
		) VALUES (
			:id, :order_id, :customer_email, :amount, :currency, :method, :status,
			:external_transaction_id, :failure_reason, :refunded_amount,
			:completed_at, :created_at, :updated_at, :version
		)`

	_, err := tx.NamedExecContext(ctx, query, r.toPostgres(payment))
	if err != nil {
		return errors.Wrap(err, "failed to insert payment")
	}

	return nil
}

// updatePayment updates an existing payment with optimistic locking
func (r *PostgresPaymentRepository) updatePayment(ctx context.Context, tx *sqlx.Tx, payment *domain.Payment) error {
	query := `
		UPDATE payments
		SET status = :status, external_transaction_id = :external_transaction_id,
			failure_reason = :failure_reason, refunded_amount = :refunded_amount,
			completed_at = :completed_at, updated_at = :updated_at, version = :version
		WHERE id = :id AND version = :old_version`

	pg := r.toPostgres(payment)
	res, err := tx.NamedExecContext(ctx, query, map[string]interface{}{
		"id":                      pg.ID,
		"status":                  pg.Status,
		"external_transaction_id": pg.ExternalTransactionID,
		"failure_reason":          pg.FailureReason,
		"refunded_amount":         pg.RefundedAmount,
		"completed_at":            pg.CompletedAt,
		"updated_at":              pg.UpdatedAt,
		"version":                 pg.Version,
		"old_version":             pg.Version - 1,
	})
	if err != nil {
		return errors.Wrap(err, "failed to update payment")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to check payment update")
	}

	if affected == 0 {
		return models.ErrVersionConflict
	}

	return nil
}

// FindByID finds a payment by ID
func (r *PostgresPaymentRepository) FindByID(ctx context.Context, id models.ID) (*domain.Payment, error) {
	query := `
		SELECT id, order_id, customer_email, amount, currency, method, status,
			   external_transaction_id, failure_reason, refunded_amount,
			   completed_at, created_at, updated_at, version
		FROM payments
		WHERE id = $1`

	var pg postgresPayment
	err := r.db.GetContext(ctx, &pg, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, errors.Wrap(err, "failed to find payment")
	}

	return r.toDomain(&pg)
}

// FindByOrderID finds payments by order ID
func (r *PostgresPaymentRepository) FindByOrderID(ctx context.Context, orderID models.ID) ([]*domain.Payment, error) {
	query := `
		SELECT id, order_id, customer_email, amount, currency, method, status,
			   external_transaction_id, failure_reason, refunded_amount,
			   completed_at, created_at, updated_at, version
		FROM payments
		WHERE order_id = $1
		ORDER BY created_at DESC`

	var rows []postgresPayment
	if err := r.db.SelectContext(ctx, &rows, query, orderID.String()); err != nil {
		return nil, errors.Wrap(err, "failed to find payments by order ID")
	}

	payments := make([]*domain.Payment, len(rows))
	for i, row := range rows {
		payment, err := r.toDomain(&row)
		if err != nil {
			return nil, err
		}
		payments[i] = payment
	}

	return payments, nil
}

// toPostgres converts domain payment to postgres model
func (r *PostgresPaymentRepository) toPostgres(payment *domain.Payment) *postgresPayment {
	return &postgresPayment{
		ID:                    payment.ID.String(),
		OrderID:               payment.OrderID.String(),
		CustomerEmail:         payment.CustomerEmail,
		Amount:                payment.Amount.Amount,
		Currency:              payment.Amount.Currency,
		Method:                string(payment.Method),
		Status:                string(payment.Status),
		ExternalTransactionID: payment.ExternalTransactionID,
		FailureReason:         payment.FailureReason,
		RefundedAmount:        payment.RefundedAmount.Amount,
		CompletedAt:           payment.CompletedAt,
		CreatedAt:             payment.Timestamps.CreatedAt,
		UpdatedAt:             payment.Timestamps.UpdatedAt,
		Version:               payment.Version.Value,
	}
}

// toDomain converts postgres model to domain payment
func (r *PostgresPaymentRepository) toDomain(pg *postgresPayment) (*domain.Payment, error) {
	id, err := models.NewID(pg.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid payment ID")
	}

	orderID, err := models.NewID(pg.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID")
	}

	return &domain.Payment{
		ID:                    id,
		OrderID:               orderID,
		CustomerEmail:         pg.CustomerEmail,
		Amount:                models.NewMoney(pg.Amount, pg.Currency),
		Method:                domain.PaymentMethod(pg.Method),
		Status:                domain.PaymentStatus(pg.Status),
		ExternalTransactionID: pg.ExternalTransactionID,
		FailureReason:         pg.FailureReason,
		RefundedAmount:        models.NewMoney(pg.RefundedAmount, pg.Currency),
		CompletedAt:           pg.CompletedAt,
		Timestamps: models.Timestamps{
			CreatedAt: pg.CreatedAt,
			UpdatedAt: pg.UpdatedAt,
		},
		Version: models.Version{Value: pg.Version},
	}, nil
}
