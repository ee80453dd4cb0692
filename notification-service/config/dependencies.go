package config

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/northmart/commerce-platform/notification-service/application"
	"github.com/northmart/commerce-platform/notification-service/handlers"
	"github.com/northmart/commerce-platform/notification-service/infrastructure"
	sharedinfra "github.com/northmart/commerce-platform/shared/infrastructure"
	"go.uber.org/zap"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Infrastructure
	Sender          *infrastructure.SMTPSender
	EventSubscriber *sharedinfra.SQSSubscriberAdapter

	// Use Cases
	SendNotification *application.SendNotification

	// Event Handlers
	NotificationEventHandlers *handlers.NotificationEventHandlers
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
	eventSubscriber, err := sharedinfra.NewSQSSubscriberAdapter(config.AWS.SQSQueueURL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create SQS subscriber: %w", err)
	}
	deps.EventSubscriber = eventSubscriber

	// Initialize sender
	deps.Sender = infrastructure.NewSMTPSender(infrastructure.SMTPConfig{
		Host:     config.SMTP.Host,
		Port:     config.SMTP.Port,
		From:     config.SMTP.From,
		Password: config.SMTP.Password,
	}, logger)

	// Initialize use cases
	processedEvents := sharedinfra.NewPostgresProcessedEventStore(db)
	deps.SendNotification = application.NewSendNotification(deps.Sender, processedEvents, logger)

	// Initialize handlers
	deps.NotificationEventHandlers = handlers.NewNotificationEventHandlers(deps.SendNotification)

	return deps, nil
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error

	if d.EventSubscriber != nil {
		if err := d.EventSubscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event subscriber: %w", err))
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
