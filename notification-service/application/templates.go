package application

import (
	"fmt"

	"github.com/northmart/commerce-platform/shared/events"
)

// notification is a rendered email ready for the sender
type notification struct {
	Recipient string
	Subject   string
	Body      string
}

// renderNotification maps an event onto its email template. Events without
// a template are not notification-worthy and are skipped.
func renderNotification(event *events.Event) (*notification, error) {
	switch event.EventType {
	case events.OrderCreatedEvent:
		var data events.OrderCreatedData
		if err := event.UnmarshalPayload(&data); err != nil {
			return nil, err
		}
		return &notification{
			Recipient: data.CustomerEmail,
			Subject:   "We received your order",
			Body: fmt.Sprintf("Hi %s,\n\nYour order %s has been received. Total: %d %s.\n\nWe will let you know once payment is confirmed.",
				data.CustomerName, data.OrderID, data.TotalAmount.Amount, data.TotalAmount.Currency),
		}, nil

	case events.OrderConfirmedEvent:
		var data events.OrderConfirmedData
		if err := event.UnmarshalPayload(&data); err != nil {
			return nil, err
		}
		return &notification{
			Recipient: data.CustomerEmail,
			Subject:   "Your order is confirmed",
			Body:      fmt.Sprintf("Good news! Order %s is confirmed and is being prepared for shipment.", data.OrderID),
		}, nil

	case events.OrderCancelledEvent:
		var data events.OrderCancelledData
		if err := event.UnmarshalPayload(&data); err != nil {
			return nil, err
		}
		return &notification{
			Recipient: data.CustomerEmail,
			Subject:   "Your order was cancelled",
			Body:      fmt.Sprintf("Order %s was cancelled. Reason: %s.", data.OrderID, data.Reason),
		}, nil

	case events.OrderShippedEvent:
		var data events.OrderShippedData
		if err := event.UnmarshalPayload(&data); err != nil {
			return nil, err
		}
		return &notification{
			Recipient: data.CustomerEmail,
			Subject:   "Your order has shipped",
			Body:      fmt.Sprintf("Order %s is on its way. Tracking number: %s.", data.OrderID, data.TrackingNumber),
		}, nil

	case events.PaymentFailedEvent:
		var data events.PaymentFailedData
		if err := event.UnmarshalPayload(&data); err != nil {
			return nil, err
		}
		// The payment failed payload carries no email; notify via the order
		// cancellation that follows. Kept for completeness of the topic set.
		return nil, nil

	case events.PaymentRefundCompletedEvent:
		var data events.PaymentRefundCompletedData
		if err := event.UnmarshalPayload(&data); err != nil {
			return nil, err
		}
		return &notification{
			Recipient: data.CustomerEmail,
			Subject:   "Your refund has been processed",
			Body: fmt.Sprintf("A refund of %d %s for order %s has been processed. Reason: %s.",
				data.Amount.Amount, data.Amount.Currency, data.OrderID, data.Reason),
		}, nil

	case events.ProductInterestEvent:
		var data events.ProductInterestData
		if err := event.UnmarshalPayload(&data); err != nil {
			return nil, err
		}
		return &notification{
			Recipient: data.CustomerEmail,
			Subject:   fmt.Sprintf("Thanks for your interest in %s", data.ProductName),
			Body:      fmt.Sprintf("We noted your interest in %s and will keep you posted on availability and offers.", data.ProductName),
		}, nil

	case events.VendorFollowUpRequestedEvent:
		var data events.VendorFollowUpRequestedData
		if err := event.UnmarshalPayload(&data); err != nil {
			return nil, err
		}
		return &notification{
			Recipient: data.VendorEmail,
			Subject:   "A customer requested a follow-up",
			Body:      fmt.Sprintf("Customer %s asked for a follow-up:\n\n%s", data.CustomerEmail, data.Message),
		}, nil

	case events.InquiryCreatedEvent:
		var data events.InquiryCreatedData
		if err := event.UnmarshalPayload(&data); err != nil {
			return nil, err
		}
		return &notification{
			Recipient: data.CustomerEmail,
			Subject:   "We received your inquiry",
			Body:      fmt.Sprintf("Thanks for reaching out about %q. Our team will get back to you shortly.", data.Subject),
		}, nil

	default:
		return nil, nil
	}
}
