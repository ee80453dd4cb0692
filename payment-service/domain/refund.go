package domain

import (
	"context"
	"time"

	"github.com/northmart/commerce-platform/shared/models"
)

// Refund represents a single refund against a payment. OrderID is
// denormalized so refund listings never join across services.
type Refund struct {
	ID        models.ID
	PaymentID models.ID
	OrderID   models.ID
	Amount    models.Money
	Reason    string
	CreatedAt time.Time
}

// NewRefund creates a refund record
func NewRefund(paymentID, orderID models.ID, amount models.Money, reason string) *Refund {
	return &Refund{
		ID:        models.GenerateUUID(),
		PaymentID: paymentID,
		OrderID:   orderID,
		Amount:    amount,
		Reason:    reason,
		CreatedAt: time.Now(),
	}
}

// RefundRepository interface
type RefundRepository interface {
	FindByPaymentID(ctx context.Context, paymentID models.ID) ([]*Refund, error)
}
