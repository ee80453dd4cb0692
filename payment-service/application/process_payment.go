package application

import (
	"context"

	"github.com/northmart/commerce-platform/payment-service/domain"
	"github.com/northmart/commerce-platform/shared/models"
	"github.com/pkg/errors"
)

// ProcessPaymentCommand represents the command to hand a payment to the gateway
type ProcessPaymentCommand struct {
	PaymentID string `json:"payment_id"`
}

// ProcessPayment moves a payment to processing when it is submitted to the
// gateway. The outcome arrives later through the confirm or fail callback.
type ProcessPayment struct {
	paymentRepository domain.PaymentRepository
}

// NewProcessPayment creates a new ProcessPayment use case
func NewProcessPayment(paymentRepository domain.PaymentRepository) *ProcessPayment {
	return &ProcessPayment{
		paymentRepository: paymentRepository,
	}
}

// Execute marks the payment as processing
func (uc *ProcessPayment) Execute(ctx context.Context, cmd *ProcessPaymentCommand) error {
	paymentID, err := models.NewID(cmd.PaymentID)
	if err != nil {
		return errors.Wrap(err, "invalid payment ID")
	}

	payment, err := uc.paymentRepository.FindByID(ctx, paymentID)
	if err != nil {
		return errors.Wrap(err, "failed to find payment")
	}

	if err := payment.Process(); err != nil {
		return err
	}

	if err := uc.paymentRepository.Save(ctx, payment); err != nil {
		return errors.Wrap(err, "failed to save payment")
	}

	return nil
}
