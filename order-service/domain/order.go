package domain

import (
	"context"

	"github.com/northmart/commerce-platform/shared/events"
	"github.com/northmart/commerce-platform/shared/models"
	"github.com/pkg/errors"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending           OrderStatus = "pending"
	OrderStatusPaymentProcessing OrderStatus = "payment_processing"
	OrderStatusConfirmed         OrderStatus = "confirmed"
	OrderStatusShipped           OrderStatus = "shipped"
	OrderStatusDelivered         OrderStatus = "delivered"
	OrderStatusCancelled         OrderStatus = "cancelled"
	OrderStatusRefunded          OrderStatus = "refunded"
)

// ErrOrderAlreadyProgressed signals that the requested transition was
// already applied or superseded. Event consumers treat it as a successful
// duplicate and ack without reapplying.
var (
	ErrOrderAlreadyProgressed = errors.New("order already progressed past this transition")

	ErrOrderNotFound = errors.New("order not found")
)

// OrderItem represents a single line of an order
type OrderItem struct {
	ProductID   models.ID    `json:"product_id"`
	ProductName string       `json:"product_name"`
	Quantity    int          `json:"quantity"`
	UnitPrice   models.Money `json:"unit_price"`
}

// LineTotal returns quantity times unit price
func (i OrderItem) LineTotal() models.Money {
	return i.UnitPrice.Multiply(int64(i.Quantity))
}

// Order aggregate root
type Order struct {
	ID              models.ID
	CustomerEmail   string
	CustomerName    string
	ShippingAddress string
	Status          OrderStatus
	TotalAmount     models.Money
	Items           []OrderItem
	TrackingNumber  *string
	Timestamps      models.Timestamps
	Version         models.Version

	events []*events.Event
}

// CreateOrder factory method. The total is derived from the items; a caller
// supplied total that disagrees is rejected.
func CreateOrder(customerEmail, customerName, shippingAddress string, items []OrderItem) (*Order, error) {
	if customerEmail == "" {
		return nil, errors.New("customer email is required")
	}

	if len(items) == 0 {
		return nil, errors.New("order must contain at least one item")
	}

	currency := items[0].UnitPrice.Currency
	total := models.NewMoney(0, currency)
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, errors.New("item quantity must be positive")
		}
		if !item.UnitPrice.IsPositive() {
			return nil, errors.New("item unit price must be positive")
		}

		sum, err := total.Add(item.LineTotal())
		if err != nil {
			return nil, err
		}
		total = sum
	}

	order := &Order{
		ID:              models.GenerateUUID(),
		CustomerEmail:   customerEmail,
		CustomerName:    customerName,
		ShippingAddress: shippingAddress,
		Status:          OrderStatusPending,
		TotalAmount:     total,
		Items:           items,
		Timestamps:      models.NewTimestamps(),
		Version:         models.NewVersion(),
	}

	// Record domain event
	event := events.NewEvent(order.ID, events.OrderCreatedEvent, events.OrderCreatedData{
		OrderID:       order.ID,
		CustomerEmail: order.CustomerEmail,
		CustomerName:  order.CustomerName,
		TotalAmount:   order.TotalAmount,
	})

	order.recordEvent(event)
	return order, nil
}

// MarkPaymentProcessing marks the order as awaiting a payment outcome
func (o *Order) MarkPaymentProcessing() error {
	if o.Status != OrderStatusPending {
		return ErrOrderAlreadyProgressed
	}

	o.Status = OrderStatusPaymentProcessing
	o.Timestamps = o.Timestamps.Update()
	o.Version = o.Version.Update()

	return nil
}

// Confirm confirms the order after a successful payment. Confirming an
// order that moved on already is not an error worth retrying.
func (o *Order) Confirm() error {
	if o.Status != OrderStatusPending && o.Status != OrderStatusPaymentProcessing {
		return ErrOrderAlreadyProgressed
	}

	o.Status = OrderStatusConfirmed
	o.Timestamps = o.Timestamps.Update()
	o.Version = o.Version.Update()

	event := events.NewEvent(o.ID, events.OrderConfirmedEvent, events.OrderConfirmedData{
		OrderID:       o.ID,
		CustomerEmail: o.CustomerEmail,
	})

	o.recordEvent(event)
	return nil
}

// Cancel cancels the order
func (o *Order) Cancel(reason string) error {
	switch o.Status {
	case OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded:
		return ErrOrderAlreadyProgressed
	}

	o.Status = OrderStatusCancelled
	o.Timestamps = o.Timestamps.Update()
	o.Version = o.Version.Update()

	event := events.NewEvent(o.ID, events.OrderCancelledEvent, events.OrderCancelledData{
		OrderID:       o.ID,
		CustomerEmail: o.CustomerEmail,
		Reason:        reason,
	})

	o.recordEvent(event)
	return nil
}

// Ship marks the order as shipped with a carrier tracking number
func (o *Order) Ship(trackingNumber string) error {
	if o.Status != OrderStatusConfirmed {
		return errors.New("order can only be shipped from confirmed status")
	}

	if trackingNumber == "" {
		return errors.New("tracking number is required")
	}

	o.Status = OrderStatusShipped
	o.TrackingNumber = &trackingNumber
	o.Timestamps = o.Timestamps.Update()
	o.Version = o.Version.Update()

	event := events.NewEvent(o.ID, events.OrderShippedEvent, events.OrderShippedData{
		OrderID:        o.ID,
		CustomerEmail:  o.CustomerEmail,
		TrackingNumber: trackingNumber,
	})

	o.recordEvent(event)
	return nil
}

// Deliver marks the order as delivered
func (o *Order) Deliver() error {
	if o.Status != OrderStatusShipped {
		return errors.New("order can only be delivered from shipped status")
	}

	o.Status = OrderStatusDelivered
	o.Timestamps = o.Timestamps.Update()
	o.Version = o.Version.Update()

	event := events.NewEvent(o.ID, events.OrderDeliveredEvent, events.OrderDeliveredData{
		OrderID:       o.ID,
		CustomerEmail: o.CustomerEmail,
	})

	o.recordEvent(event)
	return nil
}

// MarkRefunded marks the order as refunded after the payment side refunded
// the full amount
func (o *Order) MarkRefunded() error {
	switch o.Status {
	case OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered:
	default:
		return ErrOrderAlreadyProgressed
	}

	o.Status = OrderStatusRefunded
	o.Timestamps = o.Timestamps.Update()
	o.Version = o.Version.Update()

	event := events.NewEvent(o.ID, events.OrderRefundedEvent, events.OrderRefundedData{
		OrderID:       o.ID,
		CustomerEmail: o.CustomerEmail,
	})

	o.recordEvent(event)
	return nil
}

// IsTerminal reports whether the order can transition further
func (o *Order) IsTerminal() bool {
	switch o.Status {
	case OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

// Events returns domain events
func (o *Order) Events() []*events.Event {
	return o.events
}

// ClearEvents clears domain events
func (o *Order) ClearEvents() {
	o.events = make([]*events.Event, 0)
}

// recordEvent records a domain event
func (o *Order) recordEvent(event *events.Event) {
	o.events = append(o.events, event)
}

// OrderRepository interface. Update persists a transition triggered by an
// event: the idempotency-ledger insert for processedEventID, the
// version-checked aggregate update and the outbox rows happen in one
// transaction. It returns events.ErrAlreadyProcessed on a ledger hit and
// models.ErrVersionConflict on an optimistic-lock race.
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	Update(ctx context.Context, order *Order, processedEventID models.ID) error
	FindByID(ctx context.Context, id models.ID) (*Order, error)
}
