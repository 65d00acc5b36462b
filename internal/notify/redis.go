package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// channelName is the pub/sub channel shared by all server instances
const channelName = "leaderboard:changes"

// RedisBroker is a Broker backed by Redis pub/sub, so change notifications
// reach every server instance sharing the store.
type RedisBroker struct {
	client *redis.Client
}

// NewRedisBroker creates a broker connected to the given Redis URL
func NewRedisBroker(url string) (*RedisBroker, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect notification broker: %w", err)
	}

	return &RedisBroker{client: client}, nil
}

// NewRedisBrokerWithClient creates a broker with an existing client (for testing)
func NewRedisBrokerWithClient(client *redis.Client) *RedisBroker {
	return &RedisBroker{client: client}
}

var _ Broker = (*RedisBroker)(nil)

// Publish sends the topic over the shared pub/sub channel
func (b *RedisBroker) Publish(ctx context.Context, topic string) error {
	return b.client.Publish(ctx, channelName, topic).Err()
}

// Subscribe listens on the shared channel and forwards topics until ctx is
// cancelled.
func (b *RedisBroker) Subscribe(ctx context.Context) (<-chan string, error) {
	pubsub := b.client.Subscribe(ctx, channelName)

	// Confirm the subscription before returning so publishes are not missed
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	ch := make(chan string, subscriberBufferSize)
	go func() {
		defer close(ch)
		defer func() { _ = pubsub.Close() }()

		msgs := pubsub.Channel()
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case ch <- msg.Payload:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

// Close closes the underlying Redis connection
func (b *RedisBroker) Close() error {
	return b.client.Close()
}
