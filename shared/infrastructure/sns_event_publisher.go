package infrastructure

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/northmart/commerce-platform/shared/events"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

var _ events.Publisher = (*SNSEventPublisher)(nil)

const maxBatchSize = 10

type snsMessage struct {
	ID            string          `json:"id"`
	AggregateID   string          `json:"aggregate_id"`
	Metadata      events.Metadata `json:"metadata"`
	Topic         string          `json:"topic"`
	Version       string          `json:"version"`
	Payload       json.RawMessage `json:"payload"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
}

// SNSEventPublisher implements events.Publisher using AWS SNS
type SNSEventPublisher struct {
	client   *sns.Client
	topicArn string
	fifo     bool
}

// NewSNSEventPublisher creates a new SNSEventPublisher
func NewSNSEventPublisher(client *sns.Client, topicArn string) *SNSEventPublisher {
	return &SNSEventPublisher{
		client:   client,
		topicArn: topicArn,
		fifo:     strings.HasSuffix(topicArn, ".fifo"),
	}
}

// Publish publishes events to SNS
func (p *SNSEventPublisher) Publish(ctx context.Context, evts ...*events.Event) error {
	if len(evts) == 0 {
		return nil
	}

	batchEvents := splitToChunks(evts, maxBatchSize)

	gr, ctx := errgroup.WithContext(ctx)

	for _, eventBatch := range batchEvents {
		eventBatch := eventBatch
		gr.Go(func() error {
			return p.batchPublish(ctx, eventBatch)
		})
	}

	return gr.Wait()
}

func (p *SNSEventPublisher) batchPublish(ctx context.Context, evts []*events.Event) error {
	requests := make([]types.PublishBatchRequestEntry, len(evts))

	for i, event := range evts {
		payload, err := event.MarshalPayload()
		if err != nil {
			return errors.Wrap(err, "failed to marshal payload")
		}

		message := &snsMessage{
			ID:            event.ID.String(),
			AggregateID:   event.AggregateID.String(),
			Metadata:      event.Metadata,
			Topic:         string(event.Topic),
			Version:       event.Version,
			Payload:       payload,
			Timestamp:     event.Timestamp,
			CorrelationID: event.CorrelationID.String(),
		}

		msgJson, err := json.Marshal(message)
		if err != nil {
			return errors.Wrap(err, "failed to marshal message")
		}

		attrs := map[string]types.MessageAttributeValue{
			"topic": {
				DataType:    aws.String("String"),
				StringValue: aws.String(string(event.Topic)),
			},
		}

		for k, v := range event.Metadata {
			if k == SQSMessageIDKey || k == SQSReceiptHandleKey {
				continue
			}

			attrs[k] = types.MessageAttributeValue{
				DataType:    aws.String("String"),
				StringValue: aws.String(v),
			}
		}

		entry := types.PublishBatchRequestEntry{
			Id:                aws.String(event.ID.String()),
			Message:           aws.String(string(msgJson)),
			MessageAttributes: attrs,
		}

		// FIFO topics keep per-aggregate ordering by grouping on the
		// aggregate ID; the event ID doubles as the deduplication key.
		if p.fifo {
			entry.MessageGroupId = aws.String(event.AggregateID.String())
			entry.MessageDeduplicationId = aws.String(event.ID.String())
		}

		requests[i] = entry
	}

	res, err := p.client.PublishBatch(
		ctx,
		&sns.PublishBatchInput{
			TopicArn:                   &p.topicArn,
			PublishBatchRequestEntries: requests,
		},
	)
	if err != nil {
		return errors.Wrap(err, "failed to publish batch to SNS")
	}

	if len(res.Failed) > 0 {
		failed := make([]string, 0, len(res.Failed))
		for _, entry := range res.Failed {
			if entry.Id != nil {
				failed = append(failed, *entry.Id)
			}
		}
		return errors.Errorf("SNS rejected %d of %d events: %s",
			len(res.Failed), len(evts), strings.Join(failed, ", "))
	}

	return nil
}

// splitToChunks splits slice into chunks of specified size
func splitToChunks[T any](slice []T, chunkSize int) [][]T {
	var chunks [][]T
	for i := 0; i < len(slice); i += chunkSize {
		end := i + chunkSize
		if end > len(slice) {
			end = len(slice)
		}
		chunks = append(chunks, slice[i:end])
	}
	return chunks
}
