package config

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/northmart/commerce-platform/payment-service/application"
	"github.com/northmart/commerce-platform/payment-service/handlers"
	"github.com/northmart/commerce-platform/payment-service/infrastructure"
	sharedinfra "github.com/northmart/commerce-platform/shared/infrastructure"
	"github.com/northmart/commerce-platform/shared/outbox"
	"go.uber.org/zap"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Repositories
	PaymentRepository *infrastructure.PostgresPaymentRepository
	RefundRepository  *infrastructure.PostgresRefundRepository

	// Use Cases
	CreatePayment       *application.CreatePayment
	GetPayment          *application.GetPayment
	ProcessPayment      *application.ProcessPayment
	ConfirmPayment      *application.ConfirmPayment
	FailPayment         *application.FailPayment
	IssueRefund         *application.IssueRefund
	ProcessOrderCreated *application.ProcessOrderCreated

	// HTTP Handlers
	PaymentHandlers *handlers.PaymentHandlers

	// Event Handlers
	PaymentEventHandlers *handlers.PaymentEventHandlers

	// Infrastructure
	EventPublisher   *sharedinfra.SNSPublisherAdapter
	EventSubscriber  *sharedinfra.SQSSubscriberAdapter
	OutboxDispatcher *outbox.Dispatcher
}

func BuildDependencies(config *Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{}

	// Initialize database
	db, err := sqlx.Connect("postgres", config.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	deps.DB = db

	// Initialize AWS infrastructure
	eventPublisher, err := sharedinfra.NewSNSPublisherAdapter(config.AWS.SNSTopicArn)
	if err != nil {
		return nil, fmt.Errorf("failed to create SNS publisher: %w", err)
	}
	deps.EventPublisher = eventPublisher

	eventSubscriber, err := sharedinfra.NewSQSSubscriberAdapter(config.AWS.SQSQueueURL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create SQS subscriber: %w", err)
	}
	deps.EventSubscriber = eventSubscriber

	// Initialize outbox dispatcher
	outboxStore := sharedinfra.NewPostgresOutboxStore(db)
	deps.OutboxDispatcher = outbox.NewDispatcher(outboxStore, eventPublisher, logger)

	// Initialize repositories
	deps.PaymentRepository = infrastructure.NewPostgresPaymentRepository(db)
	deps.RefundRepository = infrastructure.NewPostgresRefundRepository(db)

	// Initialize use cases
	deps.CreatePayment = application.NewCreatePayment(deps.PaymentRepository)
	deps.GetPayment = application.NewGetPayment(deps.PaymentRepository, deps.RefundRepository)
	deps.ProcessPayment = application.NewProcessPayment(deps.PaymentRepository)
	deps.ConfirmPayment = application.NewConfirmPayment(deps.PaymentRepository)
	deps.FailPayment = application.NewFailPayment(deps.PaymentRepository)
	deps.IssueRefund = application.NewIssueRefund(deps.PaymentRepository)
	deps.ProcessOrderCreated = application.NewProcessOrderCreated(logger)

	// Initialize handlers
	deps.PaymentHandlers = handlers.NewPaymentHandlers(
		deps.CreatePayment,
		deps.GetPayment,
		deps.ProcessPayment,
		deps.ConfirmPayment,
		deps.FailPayment,
		deps.IssueRefund,
	)
	deps.PaymentEventHandlers = handlers.NewPaymentEventHandlers(deps.ProcessOrderCreated)

	return deps, nil
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error

	if d.OutboxDispatcher != nil {
		d.OutboxDispatcher.Stop()
	}

	if d.EventSubscriber != nil {
		if err := d.EventSubscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event subscriber: %w", err))
		}
	}

	if d.EventPublisher != nil {
		if err := d.EventPublisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event publisher: %w", err))
		}
	}

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing dependencies: %v", errs)
	}

	return nil
}
