package events

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/northmart/commerce-platform/shared/models"
)

var (
	ErrInvalidTopic    = errors.New("invalid topic")
	ErrInvalidPayload  = errors.New("invalid payload")
	ErrInvalidReceiver = errors.New("receiver should be a pointer")

	// ErrAlreadyProcessed is returned by the processed-event ledger when an
	// event ID was consumed before; handlers ack without reapplying.
	ErrAlreadyProcessed = errors.New("event already processed")
)

// SchemaVersion is the current wire version stamped on every envelope.
const SchemaVersion = "1.0"

// Topic represents an event topic with pattern matching support
type Topic string

func NewTopic(topic string) (Topic, error) {
	if topic == "" {
		return "", ErrInvalidTopic
	}
	return Topic(topic), nil
}

func (t Topic) Matches(pattern Topic) bool {
	topicStr := t.String()
	patternStr := pattern.String()

	if strings.HasPrefix(patternStr, "#") && strings.HasSuffix(patternStr, "#") {
		return strings.Contains(
			topicStr,
			strings.TrimSuffix(strings.TrimPrefix(patternStr, "#"), "#"),
		)
	}

	if strings.HasPrefix(patternStr, "#") {
		return strings.HasSuffix(
			topicStr,
			strings.TrimPrefix(patternStr, "#"),
		)
	}

	if strings.HasSuffix(patternStr, "#") {
		return strings.HasPrefix(
			topicStr,
			strings.TrimSuffix(patternStr, "#"),
		)
	}

	patternParts := strings.Split(patternStr, ".")
	topicParts := strings.Split(topicStr, ".")

	return matchPattern(patternParts, topicParts)
}

func (t Topic) String() string {
	return string(t)
}

func matchPattern(patternParts, topicParts []string) bool {
	if len(patternParts) == 1 && patternParts[0] == "#" {
		return true
	}

	if len(patternParts) != len(topicParts) {
		return false
	}

	if len(patternParts) == 0 {
		return true
	}

	if patternParts[0] == "*" || patternParts[0] == topicParts[0] {
		return matchPattern(patternParts[1:], topicParts[1:])
	}

	return false
}

// Metadata represents event metadata
type Metadata map[string]string

func (m Metadata) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m Metadata) Set(key string, value string) {
	if m == nil {
		m = make(Metadata)
	}
	m[key] = value
}

func (m Metadata) Has(key string) bool {
	_, ok := m[key]
	return ok
}

func (m Metadata) Merge(metadata Metadata) Metadata {
	if m == nil {
		m = make(Metadata)
	}
	for k, v := range metadata {
		m[k] = v
	}
	return m
}

func (m Metadata) Clone() Metadata {
	clone := Metadata{}
	for k, v := range m {
		clone[k] = v
	}
	return clone
}

// Event represents a domain event. ID is globally unique per logical
// occurrence: redelivery carries the same ID and must not reapply a
// transition on any consumer.
type Event struct {
	ID            models.ID   `json:"id"`
	AggregateID   models.ID   `json:"aggregate_id"`
	Topic         Topic       `json:"topic"`
	EventType     string      `json:"event_type"`
	Version       string      `json:"version"`
	Data          interface{} `json:"data"`
	Metadata      Metadata    `json:"metadata"`
	Timestamp     time.Time   `json:"timestamp"`
	CorrelationID models.ID   `json:"correlation_id"`
}

// Publisher publishes events
type Publisher interface {
	Publish(ctx context.Context, events ...*Event) error
}

// Subscriber subscribes to events
type Subscriber interface {
	Subscribe(ctx context.Context, eventType string, handler EventHandler) error
}

// EventHandler handles domain events
type EventHandler interface {
	Handle(ctx context.Context, event *Event) error
}

// ProcessedEventStore is the persisted idempotency ledger. Record returns
// ErrAlreadyProcessed when (eventID, handlerID) was recorded before.
type ProcessedEventStore interface {
	Record(ctx context.Context, eventID models.ID, handlerID string) error
}

// DeadLetterStore holds events that repeatedly failed processing and need
// manual inspection.
type DeadLetterStore interface {
	Push(ctx context.Context, event *Event, handlerID, reason string) error
}

// NewEvent creates a new domain event
func NewEvent(aggregateID models.ID, eventType string, data interface{}) *Event {
	topic, _ := NewTopic(eventType) // event type constants are never empty
	return &Event{
		ID:          models.GenerateUUID(),
		AggregateID: aggregateID,
		Topic:       topic,
		EventType:   eventType,
		Version:     SchemaVersion,
		Data:        data,
		Metadata:    make(Metadata),
		Timestamp:   time.Now(),
	}
}

// WithCorrelationID sets correlation ID
func (e *Event) WithCorrelationID(correlationID models.ID) *Event {
	e.CorrelationID = correlationID
	return e
}

// WithMetadata adds metadata
func (e *Event) WithMetadata(key string, value string) *Event {
	if e.Metadata == nil {
		e.Metadata = make(Metadata)
	}
	e.Metadata.Set(key, value)
	return e
}

// ToJSON converts event to JSON
func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON creates event from JSON
func FromJSON(data []byte) (*Event, error) {
	var event Event
	err := json.Unmarshal(data, &event)
	return &event, err
}

// MarshalPayload marshals the event payload
func (e *Event) MarshalPayload() (json.RawMessage, error) {
	if b, ok := e.Data.([]byte); ok {
		return b, nil
	}

	if b, ok := e.Data.(json.RawMessage); ok {
		return b, nil
	}

	return json.Marshal(e.Data)
}

// UnmarshalPayload unmarshals the event payload into the given interface
func (e *Event) UnmarshalPayload(v interface{}) error {
	vValue := reflect.ValueOf(v)
	if vValue.Kind() != reflect.Ptr {
		return ErrInvalidReceiver
	}

	vValue = vValue.Elem()
	payloadValue := reflect.ValueOf(e.Data)
	if vValue.Type() == payloadValue.Type() {
		vValue.Set(payloadValue)
		return nil
	}

	if b, ok := e.Data.([]byte); ok {
		return json.Unmarshal(b, v)
	}

	if b, ok := e.Data.(json.RawMessage); ok {
		return json.Unmarshal([]byte(b), v)
	}

	raw, err := e.MarshalPayload()
	if err != nil {
		return err
	}

	return json.Unmarshal(raw, v)
}

// Clone creates a copy of the event
func (e *Event) Clone() *Event {
	return &Event{
		ID:            e.ID,
		AggregateID:   e.AggregateID,
		Topic:         e.Topic,
		EventType:     e.EventType,
		Version:       e.Version,
		Data:          e.Data,
		Metadata:      e.Metadata.Clone(),
		Timestamp:     e.Timestamp,
		CorrelationID: e.CorrelationID,
	}
}
