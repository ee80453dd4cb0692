package domain

import (
	"context"
	"time"

	"github.com/northmart/commerce-platform/shared/events"
	"github.com/northmart/commerce-platform/shared/models"
	"github.com/pkg/errors"
)

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusCompleted  PaymentStatus = "completed"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusRefunded   PaymentStatus = "refunded"
)

// PaymentMethod represents how a payment is settled
type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodWallet       PaymentMethod = "wallet"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

var (
	// ErrConflictingConfirmation signals a completion attempt carrying a
	// different external transaction ID than the one already recorded.
	ErrConflictingConfirmation = errors.New("payment already completed with a different transaction id")

	// ErrRefundExceedsBalance signals a refund larger than the remaining
	// refundable balance.
	ErrRefundExceedsBalance = errors.New("refund amount exceeds refundable balance")

	ErrInvalidPaymentMethod = errors.New("unrecognized payment method")

	ErrPaymentNotFound = errors.New("payment not found")
)

// Payment aggregate root. OrderID is a correlation reference only; the
// payment service never loads or mutates orders.
type Payment struct {
	ID                    models.ID
	OrderID               models.ID
	CustomerEmail         string
	Amount                models.Money
	Method                PaymentMethod
	Status                PaymentStatus
	ExternalTransactionID *string
	FailureReason         *string
	RefundedAmount        models.Money
	CompletedAt           *time.Time
	Timestamps            models.Timestamps
	Version               models.Version

	events []*events.Event
}

// CreatePayment factory method
func CreatePayment(orderID models.ID, customerEmail string, amount models.Money, method PaymentMethod) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, errors.New("amount must be positive")
	}

	switch method {
	case PaymentMethodCard, PaymentMethodWallet, PaymentMethodBankTransfer:
	default:
		return nil, ErrInvalidPaymentMethod
	}

	payment := &Payment{
		ID:             models.GenerateUUID(),
		OrderID:        orderID,
		CustomerEmail:  customerEmail,
		Amount:         amount,
		Method:         method,
		Status:         PaymentStatusPending,
		RefundedAmount: models.NewMoney(0, amount.Currency),
		Timestamps:     models.NewTimestamps(),
		Version:        models.NewVersion(),
	}

	// Record domain event
	event := events.NewEvent(payment.ID, events.PaymentCreatedEvent, events.PaymentCreatedData{
		PaymentID:     payment.ID,
		OrderID:       payment.OrderID,
		CustomerEmail: payment.CustomerEmail,
		Amount:        payment.Amount,
		Method:        string(payment.Method),
	})

	payment.recordEvent(event)
	return payment, nil
}

// Process marks payment as processing
func (p *Payment) Process() error {
	if p.Status != PaymentStatusPending {
		return errors.New("payment can only be processed from pending status")
	}

	p.Status = PaymentStatusProcessing
	p.Timestamps = p.Timestamps.Update()
	p.Version = p.Version.Update()

	event := events.NewEvent(p.ID, events.PaymentProcessingEvent, events.PaymentProcessingData{
		PaymentID: p.ID,
		OrderID:   p.OrderID,
	})

	p.recordEvent(event)
	return nil
}

// Complete marks payment as completed with the gateway's transaction ID.
// Repeating the call with the same transaction ID is a no-op; a different
// transaction ID is rejected because two confirmations for one payment mean
// a double charge upstream.
func (p *Payment) Complete(externalTransactionID string) error {
	if p.Status == PaymentStatusCompleted || p.Status == PaymentStatusRefunded {
		if p.ExternalTransactionID != nil && *p.ExternalTransactionID == externalTransactionID {
			return nil
		}
		return ErrConflictingConfirmation
	}

	if p.Status != PaymentStatusPending && p.Status != PaymentStatusProcessing {
		return errors.New("payment can only be completed from pending or processing status")
	}

	now := time.Now()
	p.Status = PaymentStatusCompleted
	p.ExternalTransactionID = &externalTransactionID
	p.CompletedAt = &now
	p.Timestamps = p.Timestamps.Update()
	p.Version = p.Version.Update()

	event := events.NewEvent(p.ID, events.PaymentCompletedEvent, events.PaymentCompletedData{
		PaymentID:             p.ID,
		OrderID:               p.OrderID,
		Amount:                p.Amount,
		ExternalTransactionID: externalTransactionID,
		CompletedAt:           now,
	})

	p.recordEvent(event)
	return nil
}

// Fail marks payment as failed
func (p *Payment) Fail(reason string) error {
	if p.Status != PaymentStatusPending && p.Status != PaymentStatusProcessing {
		return errors.New("payment can only be failed from pending or processing status")
	}

	now := time.Now()
	p.Status = PaymentStatusFailed
	p.FailureReason = &reason
	p.Timestamps = p.Timestamps.Update()
	p.Version = p.Version.Update()

	event := events.NewEvent(p.ID, events.PaymentFailedEvent, events.PaymentFailedData{
		PaymentID: p.ID,
		OrderID:   p.OrderID,
		Reason:    reason,
		FailedAt:  now,
	})

	p.recordEvent(event)
	return nil
}

// Refund refunds part or all of the remaining balance. Only completed
// payments are refundable; refunding the full original amount flips the
// payment to refunded.
func (p *Payment) Refund(amount models.Money, reason string) (*Refund, error) {
	if p.Status != PaymentStatusCompleted {
		return nil, errors.New("only completed payments can be refunded")
	}

	if amount.Currency != p.Amount.Currency {
		return nil, errors.New("currency mismatch")
	}

	if !amount.IsPositive() {
		return nil, errors.New("refund amount must be positive")
	}

	remaining, err := p.Amount.Subtract(p.RefundedAmount)
	if err != nil {
		return nil, err
	}

	if amount.GreaterThan(remaining) {
		return nil, ErrRefundExceedsBalance
	}

	refund := NewRefund(p.ID, p.OrderID, amount, reason)

	newRefunded, err := p.RefundedAmount.Add(amount)
	if err != nil {
		return nil, err
	}
	p.RefundedAmount = newRefunded
	p.Timestamps = p.Timestamps.Update()
	p.Version = p.Version.Update()

	event := events.NewEvent(p.ID, events.PaymentRefundCompletedEvent, events.PaymentRefundCompletedData{
		RefundID:      refund.ID,
		PaymentID:     p.ID,
		OrderID:       p.OrderID,
		CustomerEmail: p.CustomerEmail,
		Amount:        amount,
		Reason:        reason,
	})
	p.recordEvent(event)

	if p.RefundedAmount.Equals(p.Amount) {
		p.Status = PaymentStatusRefunded

		refundedEvent := events.NewEvent(p.ID, events.PaymentRefundedEvent, events.PaymentRefundedData{
			PaymentID: p.ID,
			OrderID:   p.OrderID,
		})
		p.recordEvent(refundedEvent)
	}

	return refund, nil
}

// Events returns domain events
func (p *Payment) Events() []*events.Event {
	return p.events
}

// ClearEvents clears domain events
func (p *Payment) ClearEvents() {
	p.events = make([]*events.Event, 0)
}

// recordEvent records a domain event
func (p *Payment) recordEvent(event *events.Event) {
	p.events = append(p.events, event)
}

// PaymentRepository interface
type PaymentRepository interface {
	Save(ctx context.Context, payment *Payment) error
	SaveRefund(ctx context.Context, payment *Payment, refund *Refund) error
	FindByID(ctx context.Context, id models.ID) (*Payment, error)
	FindByOrderID(ctx context.Context, orderID models.ID) ([]*Payment, error)
}
