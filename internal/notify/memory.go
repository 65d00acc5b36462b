package notify

import (
	"context"
	"log/slog"
	"sync"
)

const subscriberBufferSize = 64

// MemoryBroker is an in-process Broker for single-instance deployments.
type MemoryBroker struct {
	logger *slog.Logger

	mu sync.Mutex
	// Each subscriber channel maps to a done signal that releases its
	// context-watching goroutine on removal.
	subs   map[chan string]chan struct{}
	closed bool
}

// NewMemoryBroker creates an in-process notification broker
func NewMemoryBroker(logger *slog.Logger) *MemoryBroker {
	return &MemoryBroker{
		logger: logger.With(slog.String("component", "notify")),
		subs:   make(map[chan string]chan struct{}),
	}
}

var _ Broker = (*MemoryBroker)(nil)

// Publish fans the topic out to all subscribers. Subscribers with full
// buffers are skipped rather than blocking the publisher.
func (b *MemoryBroker) Publish(ctx context.Context, topic string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subs {
		select {
		case ch <- topic:
		default:
			b.logger.Warn("notification dropped - subscriber buffer full",
				slog.String("topic", topic))
		}
	}
	return nil
}

// Subscribe registers a new subscriber. The channel closes when ctx is
// cancelled or the broker shuts down.
func (b *MemoryBroker) Subscribe(ctx context.Context) (<-chan string, error) {
	ch := make(chan string, subscriberBufferSize)
	done := make(chan struct{})

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, nil
	}
	b.subs[ch] = done
	b.mu.Unlock()

	// done releases this goroutine when the subscriber is removed some
	// other way, such as broker Close with a non-cancellable ctx.
	go func() {
		select {
		case <-ctx.Done():
			b.remove(ch)
		case <-done:
		}
	}()

	return ch, nil
}

// Close shuts down the broker and all subscriber channels
func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for ch, done := range b.subs {
		close(done)
		close(ch)
		delete(b.subs, ch)
	}
	return nil
}

func (b *MemoryBroker) remove(ch chan string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if done, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(done)
		close(ch)
	}
}
