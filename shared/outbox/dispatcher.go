package outbox

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/northmart/commerce-platform/shared/events"
	"go.uber.org/zap"
)

// Dispatcher polls pending outbox entries and relays them to the broker.
// A crash between commit and publish only delays the relay: the entry stays
// pending and is picked up by the next poll, so delivery is at least once.
type Dispatcher struct {
	store     Store
	publisher events.Publisher
	logger    *zap.Logger
	options   *dispatcherOptions

	cancel  context.CancelFunc
	done    chan struct{}
	running atomic.Bool
}

type dispatcherOptions struct {
	pollInterval time.Duration
	batchSize    int
}

type DispatcherOption func(*dispatcherOptions)

func WithPollInterval(interval time.Duration) DispatcherOption {
	return func(o *dispatcherOptions) {
		o.pollInterval = interval
	}
}

func WithBatchSize(size int) DispatcherOption {
	return func(o *dispatcherOptions) {
		o.batchSize = size
	}
}

// NewDispatcher creates a new outbox dispatcher
func NewDispatcher(store Store, publisher events.Publisher, logger *zap.Logger, opts ...DispatcherOption) *Dispatcher {
	options := &dispatcherOptions{
		pollInterval: 500 * time.Millisecond,
		batchSize:    50,
	}

	for _, opt := range opts {
		opt(options)
	}

	return &Dispatcher{
		store:     store,
		publisher: publisher,
		logger:    logger,
		options:   options,
	}
}

// Start launches the polling loop
func (d *Dispatcher) Start(ctx context.Context) error {
	if d.running.Load() {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})
	d.running.Store(true)

	go d.run(ctx)

	return nil
}

// Stop cancels the polling loop and waits for it to drain
func (d *Dispatcher) Stop() {
	if !d.running.Load() {
		return
	}

	d.cancel()
	<-d.done
	d.running.Store(false)
}

func (d *Dispatcher) run(ctx context.Context) {
	defer close(d.done)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = d.options.pollInterval
	bo.MaxInterval = 30 * time.Second

	wait := d.options.pollInterval
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}

		dispatched, err := d.dispatchOnce(ctx)
		switch {
		case err != nil:
			d.logger.Error("outbox dispatch failed", zap.Error(err))
			wait = bo.NextBackOff()
		case dispatched == 0:
			wait = bo.NextBackOff()
		default:
			bo.Reset()
			wait = d.options.pollInterval
		}
	}
}

// dispatchOnce publishes one batch of pending entries. Entries that fail to
// publish are marked failed (attempts incremented) and retried next poll.
func (d *Dispatcher) dispatchOnce(ctx context.Context) (int, error) {
	entries, err := d.store.CollectPending(ctx, d.options.batchSize)
	if err != nil {
		return 0, err
	}

	dispatched := 0
	for _, entry := range entries {
		event, err := entry.Event()
		if err != nil {
			// A row that cannot deserialize will never publish; count the
			// failure so the attempts column flags it for an operator.
			d.logger.Error("malformed outbox entry",
				zap.String("entry_id", entry.ID.String()),
				zap.Error(err))
			if err := d.store.MarkFailed(ctx, entry.ID); err != nil {
				return dispatched, err
			}
			continue
		}

		if err := d.publisher.Publish(ctx, event); err != nil {
			d.logger.Warn("failed to publish outbox entry",
				zap.String("entry_id", entry.ID.String()),
				zap.String("topic", entry.Topic),
				zap.Int("attempts", entry.Attempts),
				zap.Error(err))
			if err := d.store.MarkFailed(ctx, entry.ID); err != nil {
				return dispatched, err
			}
			continue
		}

		// The broker has acknowledged; the mark must complete even if the
		// dispatcher is shutting down, or the entry would publish twice.
		if err := d.store.MarkPublished(context.WithoutCancel(ctx), entry.ID); err != nil {
			return dispatched, err
		}
		dispatched++
	}

	return dispatched, nil
}
