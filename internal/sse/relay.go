package sse

import (
	"context"
	"log/slog"

	"github.com/jcruden/live-leaderboard/internal/notify"
)

// Relay forwards change notifications from the broker to the hub as SSE
// events, until the context is cancelled or the subscription ends.
func Relay(ctx context.Context, sub notify.Subscriber, hub *Hub, logger *slog.Logger) error {
	topics, err := sub.Subscribe(ctx)
	if err != nil {
		return err
	}

	go func() {
		for topic := range topics {
			switch topic {
			case notify.TopicPlayers:
				hub.BroadcastEvent(EventPlayersChanged, `{"topic":"players"}`)
			case notify.TopicState:
				hub.BroadcastEvent(EventStateChanged, `{"topic":"state"}`)
			default:
				logger.Warn("unknown notification topic", slog.String("topic", topic))
			}
		}
	}()

	return nil
}
