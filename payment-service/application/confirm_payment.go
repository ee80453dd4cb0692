package application

import (
	"context"

	"github.com/northmart/commerce-platform/payment-service/domain"
	"github.com/northmart/commerce-platform/shared/models"
	"github.com/pkg/errors"
)

// ConfirmPaymentCommand represents the command to confirm a payment
type ConfirmPaymentCommand struct {
	PaymentID             string `json:"payment_id"`
	ExternalTransactionID string `json:"external_transaction_id"`
}

// ConfirmPayment use case. The gateway callback may arrive more than once;
// the domain treats a repeat with the same transaction ID as a no-op and a
// repeat with a different one as a conflict.
type ConfirmPayment struct {
	paymentRepository domain.PaymentRepository
}

// NewConfirmPayment creates a new ConfirmPayment use case
func NewConfirmPayment(paymentRepository domain.PaymentRepository) *ConfirmPayment {
	return &ConfirmPayment{
		paymentRepository: paymentRepository,
	}
}

// Execute confirms the payment
func (uc *ConfirmPayment) Execute(ctx context.Context, cmd *ConfirmPaymentCommand) error {
	if cmd.ExternalTransactionID == "" {
		return errors.New("external transaction ID is required")
	}

	paymentID, err := models.NewID(cmd.PaymentID)
	if err != nil {
		return errors.Wrap(err, "invalid payment ID")
	}

	payment, err := uc.paymentRepository.FindByID(ctx, paymentID)
	if err != nil {
		return errors.Wrap(err, "failed to find payment")
	}

	if err := payment.Complete(cmd.ExternalTransactionID); err != nil {
		return err
	}

	// An idempotent repeat records no events and needs no write
	if len(payment.Events()) == 0 {
		return nil
	}

	if err := uc.paymentRepository.Save(ctx, payment); err != nil {
		return errors.Wrap(err, "failed to save payment")
	}

	return nil
}
