// Package notify carries change notifications from the score service to
// anything that wants to refresh: the SSE hub in-process, or other server
// instances via Redis pub/sub.
package notify

import "context"

// Topics published when shared state changes
const (
	// TopicPlayers fires after any player row changes (score or roster)
	TopicPlayers = "players"
	// TopicState fires after the global lock flips
	TopicState = "state"
)

// Publisher publishes a change notification for a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string) error
}

// Subscriber delivers published topics. The returned channel closes when
// the context is cancelled or the subscriber is closed.
type Subscriber interface {
	Subscribe(ctx context.Context) (<-chan string, error)
}

// Broker is both ends of a notification channel.
type Broker interface {
	Publisher
	Subscriber
	Close() error
}
