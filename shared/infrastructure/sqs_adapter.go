package infrastructure

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/northmart/commerce-platform/shared/events"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SQSSubscriberAdapter adapts SQSEventSubscriber to the events.Subscriber interface
type SQSSubscriberAdapter struct {
	sqsSubscriber *SQSEventSubscriber
	isRunning     bool
	queueURL      string
	logger        *zap.Logger
}

// NewSQSSubscriberAdapter creates a new SQS subscriber adapter
func NewSQSSubscriberAdapter(queueURL string, logger *zap.Logger) (*SQSSubscriberAdapter, error) {
	return &SQSSubscriberAdapter{
		sqsSubscriber: nil, // Will be created when Subscribe is called
		isRunning:     false,
		queueURL:      queueURL,
		logger:        logger,
	}, nil
}

// eventHandlerAdapter adapts events.EventHandler to the SQS EventHandler
type eventHandlerAdapter struct {
	id      string
	handler events.EventHandler
}

func (a *eventHandlerAdapter) HandlerID() string {
	return a.id
}

func (a *eventHandlerAdapter) Handle(ctx context.Context, event *events.Event) error {
	return a.handler.Handle(ctx, event)
}

// Subscribe implements events.Subscriber interface. The eventType argument is
// unused because topic routing happens in SNS subscription filters; every
// handler receives the full queue stream and dispatches on EventType.
func (s *SQSSubscriberAdapter) Subscribe(ctx context.Context, eventType string, handler events.EventHandler) error {
	if s.isRunning {
		return errors.New("subscriber is already running")
	}

	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		return errors.Wrap(err, "failed to load AWS config")
	}

	sqsClient := sqs.NewFromConfig(cfg)

	id := "event-handler-adapter"
	if named, ok := handler.(interface{ HandlerID() string }); ok {
		id = named.HandlerID()
	}
	adaptedHandler := &eventHandlerAdapter{id: id, handler: handler}

	s.sqsSubscriber = NewSQSEventSubscriber(sqsClient, s.queueURL, adaptedHandler, s.logger)

	if err := s.sqsSubscriber.Start(ctx); err != nil {
		return errors.Wrap(err, "failed to start SQS subscriber")
	}

	s.isRunning = true
	return nil
}

// Close stops the subscriber
func (s *SQSSubscriberAdapter) Close() error {
	if !s.isRunning || s.sqsSubscriber == nil {
		return nil
	}

	ctx := context.Background()
	if err := s.sqsSubscriber.Stop(ctx); err != nil {
		return errors.Wrap(err, "failed to stop SQS subscriber")
	}

	s.isRunning = false
	return nil
}
