package notify

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcruden/live-leaderboard/internal/testutil"
)

func receiveTopic(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case topic, ok := <-ch:
		require.True(t, ok, "subscription channel closed unexpectedly")
		return topic
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
		return ""
	}
}

func TestMemoryBrokerFanout(t *testing.T) {
	broker := NewMemoryBroker(testutil.NopLogger())
	defer func() { _ = broker.Close() }()

	ctx := context.Background()
	sub1, err := broker.Subscribe(ctx)
	require.NoError(t, err)
	sub2, err := broker.Subscribe(ctx)
	require.NoError(t, err)

	require.NoError(t, broker.Publish(ctx, TopicPlayers))

	assert.Equal(t, TopicPlayers, receiveTopic(t, sub1))
	assert.Equal(t, TopicPlayers, receiveTopic(t, sub2))
}

func TestMemoryBrokerSubscriptionEndsOnCancel(t *testing.T) {
	broker := NewMemoryBroker(testutil.NopLogger())
	defer func() { _ = broker.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := broker.Subscribe(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-sub:
		assert.False(t, ok, "channel should be closed after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after context cancel")
	}
}

func TestMemoryBrokerCloseClosesSubscribers(t *testing.T) {
	broker := NewMemoryBroker(testutil.NopLogger())

	sub, err := broker.Subscribe(context.Background())
	require.NoError(t, err)

	require.NoError(t, broker.Close())

	_, ok := <-sub
	assert.False(t, ok)

	// Publishing after close is a no-op, not a panic
	assert.NoError(t, broker.Publish(context.Background(), TopicState))
}

func TestMemoryBrokerCloseReleasesSubscriberGoroutines(t *testing.T) {
	baseline := runtime.NumGoroutine()

	broker := NewMemoryBroker(testutil.NopLogger())

	// Background contexts are never cancelled, so the broker itself must
	// release the per-subscriber goroutines on Close.
	for i := 0; i < 8; i++ {
		_, err := broker.Subscribe(context.Background())
		require.NoError(t, err)
	}

	require.NoError(t, broker.Close())

	require.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= baseline+1
	}, 2*time.Second, 10*time.Millisecond, "subscriber goroutines still running after close")
}

func TestRedisBrokerPublishSubscribe(t *testing.T) {
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	broker := NewRedisBrokerWithClient(client)
	defer func() { _ = broker.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := broker.Subscribe(ctx)
	require.NoError(t, err)

	require.NoError(t, broker.Publish(ctx, TopicPlayers))
	assert.Equal(t, TopicPlayers, receiveTopic(t, sub))

	require.NoError(t, broker.Publish(ctx, TopicState))
	assert.Equal(t, TopicState, receiveTopic(t, sub))
}
