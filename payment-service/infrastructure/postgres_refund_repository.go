package infrastructure

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/northmart/commerce-platform/payment-service/domain"
	"github.com/northmart/commerce-platform/shared/models"
	"github.com/pkg/errors"
)

// PostgresRefundRepository implements RefundRepository using PostgreSQL
type PostgresRefundRepository struct {
	db *sqlx.DB
}

// NewPostgresRefundRepository creates a new PostgresRefundRepository
func NewPostgresRefundRepository(db *sqlx.DB) *PostgresRefundRepository {
	return &PostgresRefundRepository{db: db}
}

var _ domain.RefundRepository = (*PostgresRefundRepository)(nil)

// postgresRefund represents a refund in the database
type postgresRefund struct {
	ID        string    `db:"id"`
	PaymentID string    `db:"payment_id"`
	OrderID   string    `db:"order_id"`
	Amount    int64     `db:"amount"`
	Currency  string    `db:"currency"`
	Reason    string    `db:"reason"`
	CreatedAt time.Time `db:"created_at"`
}

// FindByPaymentID finds refunds by payment ID
func (r *PostgresRefundRepository) FindByPaymentID(ctx context.Context, paymentID models.ID) ([]*domain.Refund, error) {
	query := `
		SELECT id, payment_id, order_id, amount, currency, reason, created_at
		FROM refunds
		WHERE payment_id = $1
		ORDER BY created_at ASC`

	var rows []postgresRefund
	if err := r.db.SelectContext(ctx, &rows, query, paymentID.String()); err != nil {
		return nil, errors.Wrap(err, "failed to find refunds by payment ID")
	}

	refunds := make([]*domain.Refund, len(rows))
	for i, row := range rows {
		refunds[i] = &domain.Refund{
			ID:        models.ID(row.ID),
			PaymentID: models.ID(row.PaymentID),
			OrderID:   models.ID(row.OrderID),
			Amount:    models.NewMoney(row.Amount, row.Currency),
			Reason:    row.Reason,
			CreatedAt: row.CreatedAt,
		}
	}

	return refunds, nil
}
