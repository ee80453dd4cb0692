package events

import (
	"time"

	"github.com/northmart/commerce-platform/shared/models"
)

// Event Types Constants
const (
	// Order Events
	OrderCreatedEvent   = "order.created"
	OrderConfirmedEvent = "order.confirmed"
	OrderCancelledEvent = "order.cancelled"
	OrderShippedEvent   = "order.shipped"
	OrderDeliveredEvent = "order.delivered"
	OrderRefundedEvent  = "order.refunded"

	// Payment Events
	PaymentCreatedEvent         = "payment.created"
	PaymentProcessingEvent      = "payment.processing"
	PaymentCompletedEvent       = "payment.completed"
	PaymentFailedEvent          = "payment.failed"
	PaymentRefundCompletedEvent = "payment.refund.completed"
	PaymentRefundedEvent        = "payment.refunded"

	// Secondary producer events, notification-only
	ProductInterestEvent         = "product.interest"
	VendorFollowUpRequestedEvent = "vendor.followup.requested"
	InquiryCreatedEvent          = "inquiry.created"
)

// Order event payloads

type OrderCreatedData struct {
	OrderID       models.ID    `json:"order_id"`
	CustomerEmail string       `json:"customer_email"`
	CustomerName  string       `json:"customer_name"`
	TotalAmount   models.Money `json:"total_amount"`
}

type OrderConfirmedData struct {
	OrderID       models.ID `json:"order_id"`
	CustomerEmail string    `json:"customer_email"`
}

type OrderCancelledData struct {
	OrderID       models.ID `json:"order_id"`
	CustomerEmail string    `json:"customer_email"`
	Reason        string    `json:"reason"`
}

type OrderShippedData struct {
	OrderID        models.ID `json:"order_id"`
	CustomerEmail  string    `json:"customer_email"`
	TrackingNumber string    `json:"tracking_number"`
}

type OrderDeliveredData struct {
	OrderID       models.ID `json:"order_id"`
	CustomerEmail string    `json:"customer_email"`
}

type OrderRefundedData struct {
	OrderID       models.ID `json:"order_id"`
	CustomerEmail string    `json:"customer_email"`
}

// Payment event payloads

type PaymentCreatedData struct {
	PaymentID     models.ID    `json:"payment_id"`
	OrderID       models.ID    `json:"order_id"`
	CustomerEmail string       `json:"customer_email"`
	Amount        models.Money `json:"amount"`
	Method        string       `json:"method"`
}

type PaymentProcessingData struct {
	PaymentID models.ID `json:"payment_id"`
	OrderID   models.ID `json:"order_id"`
}

type PaymentCompletedData struct {
	PaymentID             models.ID    `json:"payment_id"`
	OrderID               models.ID    `json:"order_id"`
	Amount                models.Money `json:"amount"`
	ExternalTransactionID string       `json:"external_transaction_id"`
	CompletedAt           time.Time    `json:"completed_at"`
}

type PaymentFailedData struct {
	PaymentID models.ID `json:"payment_id"`
	OrderID   models.ID `json:"order_id"`
	Reason    string    `json:"reason"`
	FailedAt  time.Time `json:"failed_at"`
}

type PaymentRefundCompletedData struct {
	RefundID      models.ID    `json:"refund_id"`
	PaymentID     models.ID    `json:"payment_id"`
	OrderID       models.ID    `json:"order_id"`
	CustomerEmail string       `json:"customer_email"`
	Amount        models.Money `json:"amount"`
	Reason        string       `json:"reason"`
}

type PaymentRefundedData struct {
	PaymentID models.ID `json:"payment_id"`
	OrderID   models.ID `json:"order_id"`
}

// Secondary producer payloads

type ProductInterestData struct {
	ProductID     models.ID `json:"product_id"`
	ProductName   string    `json:"product_name"`
	CustomerEmail string    `json:"customer_email"`
}

type VendorFollowUpRequestedData struct {
	VendorID      models.ID `json:"vendor_id"`
	VendorEmail   string    `json:"vendor_email"`
	CustomerEmail string    `json:"customer_email"`
	Message       string    `json:"message"`
}

type InquiryCreatedData struct {
	InquiryID     models.ID `json:"inquiry_id"`
	CustomerEmail string    `json:"customer_email"`
	Subject       string    `json:"subject"`
}
