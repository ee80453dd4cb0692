package application

import (
	"context"

	"github.com/northmart/commerce-platform/payment-service/domain"
	"github.com/northmart/commerce-platform/shared/models"
	"github.com/pkg/errors"
)

// IssueRefundCommand represents the command to refund a payment
type IssueRefundCommand struct {
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Reason    string `json:"reason"`
}

// IssueRefundResponse represents the response after issuing a refund
type IssueRefundResponse struct {
	RefundID string `json:"refund_id"`
}

// IssueRefund use case
type IssueRefund struct {
	paymentRepository domain.PaymentRepository
}

// NewIssueRefund creates a new IssueRefund use case
func NewIssueRefund(paymentRepository domain.PaymentRepository) *IssueRefund {
	return &IssueRefund{
		paymentRepository: paymentRepository,
	}
}

// Execute issues a refund against a completed payment
func (uc *IssueRefund) Execute(ctx context.Context, cmd *IssueRefundCommand) (*IssueRefundResponse, error) {
	if cmd.Amount <= 0 {
		return nil, errors.New("refund amount must be positive")
	}

	if cmd.Currency == "" {
		return nil, errors.New("currency is required")
	}

	paymentID, err := models.NewID(cmd.PaymentID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid payment ID")
	}

	payment, err := uc.paymentRepository.FindByID(ctx, paymentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find payment")
	}

	refund, err := payment.Refund(models.NewMoney(cmd.Amount, cmd.Currency), cmd.Reason)
	if err != nil {
		return nil, err
	}

	if err := uc.paymentRepository.SaveRefund(ctx, payment, refund); err != nil {
		return nil, errors.Wrap(err, "failed to save refund")
	}

	return &IssueRefundResponse{
		RefundID: refund.ID.String(),
	}, nil
}
