package config

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/northmart/commerce-platform/order-service/application"
	"github.com/northmart/commerce-platform/order-service/handlers"
	"github.com/northmart/commerce-platform/order-service/infrastructure"
	sharedinfra "github.com/northmart/commerce-platform/shared/infrastructure"
	"github.com/northmart/commerce-platform/shared/outbox"
	"go.uber.org/zap"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Repositories
	OrderRepository *infrastructure.PostgresOrderRepository

	// Use Cases
	CreateOrder          *application.CreateOrder
	GetOrder             *application.GetOrder
	ShipOrder            *application.ShipOrder
	DeliverOrder         *application.DeliverOrder
	ProcessPaymentResult *application.ProcessPaymentResult

	// HTTP Handlers
	OrderHandlers *handlers.OrderHandlers

	// Event Handlers
	OrderEventHandlers *handlers.OrderEventHandlers

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
	deps.OrderRepository = infrastructure.NewPostgresOrderRepository(db)

	// Initialize use cases
	deadLetters := sharedinfra.NewPostgresDeadLetterStore(db)
	deps.CreateOrder = application.NewCreateOrder(deps.OrderRepository)
	deps.GetOrder = application.NewGetOrder(deps.OrderRepository)
	deps.ShipOrder = application.NewShipOrder(deps.OrderRepository)
	deps.DeliverOrder = application.NewDeliverOrder(deps.OrderRepository)
	deps.ProcessPaymentResult = application.NewProcessPaymentResult(deps.OrderRepository, deadLetters, logger)

	// Initialize handlers
	deps.OrderHandlers = handlers.NewOrderHandlers(
		deps.CreateOrder,
		deps.GetOrder,
		deps.ShipOrder,
		deps.DeliverOrder,
	)
	deps.OrderEventHandlers = handlers.NewOrderEventHandlers(deps.ProcessPaymentResult)

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
