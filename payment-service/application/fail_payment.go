package application

import (
	"context"

	"github.com/northmart/commerce-platform/payment-service/domain"
	"github.com/northmart/commerce-platform/shared/models"
	"github.com/pkg/errors"
)

// FailPaymentCommand represents the command to fail a payment
type FailPaymentCommand struct {
	PaymentID string `json:"payment_id"`
	Reason    string `json:"reason"`
}

// FailPayment use case
type FailPayment struct {
	paymentRepository domain.PaymentRepository
}

// NewFailPayment creates a new FailPayment use case
func NewFailPayment(paymentRepository domain.PaymentRepository) *FailPayment {
	return &FailPayment{
		paymentRepository: paymentRepository,
	}
}

// Execute fails the payment and stages payment.failed through the outbox
func (uc *FailPayment) Execute(ctx context.Context, cmd *FailPaymentCommand) error {
	if cmd.Reason == "" {
		return errors.New("failure reason is required")
	}

	paymentID, err := models.NewID(cmd.PaymentID)
	if err != nil {
		return errors.Wrap(err, "invalid payment ID")
	}

	payment, err := uc.paymentRepository.FindByID(ctx, paymentID)
	if err != nil {
		return errors.Wrap(err, "failed to find payment")
	}

	if err := payment.Fail(cmd.Reason); err != nil {
		return err
	}

	if err := uc.paymentRepository.Save(ctx, payment); err != nil {
		return errors.Wrap(err, "failed to save payment")
	}

	return nil
}
