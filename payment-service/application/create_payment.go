package application

import (
	"context"

	"github.com/northmart/commerce-platform/payment-service/domain"
	"github.com/northmart/commerce-platform/shared/models"
	"github.com/pkg/errors"
)

// CreatePaymentCommand represents the command to create a payment
type CreatePaymentCommand struct {
	OrderID       string `json:"order_id"`
	CustomerEmail string `json:"customer_email"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	Method        string `json:"method"`
}

// CreatePaymentResponse represents the response after creating a payment
type CreatePaymentResponse struct {
	PaymentID string `json:"payment_id"`
}

// CreatePayment use case
type CreatePayment struct {
	paymentRepository domain.PaymentRepository
}

// NewCreatePayment creates a new CreatePayment use case
func NewCreatePayment(paymentRepository domain.PaymentRepository) *CreatePayment {
	return &CreatePayment{
		paymentRepository: paymentRepository,
	}
}

// Execute creates the payment and stages payment.created through the outbox
func (uc *CreatePayment) Execute(ctx context.Context, cmd *CreatePaymentCommand) (*CreatePaymentResponse, error) {
	if err := uc.validateCommand(cmd); err != nil {
		return nil, errors.Wrap(err, "invalid command")
	}

	orderID, err := models.NewID(cmd.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID")
	}

	amount := models.NewMoney(cmd.Amount, cmd.Currency)

	payment, err := domain.CreatePayment(orderID, cmd.CustomerEmail, amount, domain.PaymentMethod(cmd.Method))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create payment")
	}

	if err := uc.paymentRepository.Save(ctx, payment); err != nil {
		return nil, errors.Wrap(err, "failed to save payment")
	}

	return &CreatePaymentResponse{
		PaymentID: payment.ID.String(),
	}, nil
}

// validateCommand validates the create payment command
func (uc *CreatePayment) validateCommand(cmd *CreatePaymentCommand) error {
	if cmd.OrderID == "" {
		return errors.New("order ID is required")
	}

	if cmd.CustomerEmail == "" {
		return errors.New("customer email is required")
	}

	if cmd.Amount <= 0 {
		return errors.New("amount must be positive")
	}

	if cmd.Currency == "" {
		return errors.New("currency is required")
	}

	if cmd.Method == "" {
		return errors.New("payment method is required")
	}

	return nil
}
