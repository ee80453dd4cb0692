package application

import (
	"context"

	"github.com/northmart/commerce-platform/payment-service/domain"
	"github.com/northmart/commerce-platform/shared/models"
	"github.com/pkg/errors"
)

// GetPaymentQuery represents the query to get a payment
type GetPaymentQuery struct {
	PaymentID string `json:"payment_id"`
}

// GetPayment use case
type GetPayment struct {
	paymentRepository domain.PaymentRepository
	refundRepository  domain.RefundRepository
}

// NewGetPayment creates a new GetPayment use case
func NewGetPayment(paymentRepository domain.PaymentRepository, refundRepository domain.RefundRepository) *GetPayment {
	return &GetPayment{
		paymentRepository: paymentRepository,
		refundRepository:  refundRepository,
	}
}

// GetPaymentResponse carries the payment with its refund history
type GetPaymentResponse struct {
	Payment *domain.Payment  `json:"payment"`
	Refunds []*domain.Refund `json:"refunds"`
}

// Execute gets a payment by ID
func (uc *GetPayment) Execute(ctx context.Context, query *GetPaymentQuery) (*GetPaymentResponse, error) {
	paymentID, err := models.NewID(query.PaymentID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid payment ID")
	}

	payment, err := uc.paymentRepository.FindByID(ctx, paymentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find payment")
	}

	refunds, err := uc.refundRepository.FindByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find refunds")
	}

	return &GetPaymentResponse{
		Payment: payment,
		Refunds: refunds,
	}, nil
}
