package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jcruden/live-leaderboard/internal/notify"
	"github.com/jcruden/live-leaderboard/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "players-changed",
			data:      `{"topic":"players"}`,
			expected:  "event: players-changed\ndata: {\"topic\":\"players\"}\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "test",
			data:      "line1\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "carriage returns stripped",
			eventName: "test",
			data:      "line1\r\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatSSEMessage(tt.eventName, tt.data)
			if string(result) != tt.expected {
				t.Errorf("formatSSEMessage(%q, %q)\ngot:  %q\nwant: %q",
					tt.eventName, tt.data, string(result), tt.expected)
			}
		})
	}
}

func TestHubBroadcastReachesClients(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient()
	hub.Register(client)

	hub.BroadcastEvent(EventPlayersChanged, "{}")

	select {
	case msg := <-client.send:
		expected := "event: players-changed\ndata: {}\n\n"
		if string(msg) != expected {
			t.Errorf("got %q, want %q", string(msg), expected)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for broadcast")
	}
}

func TestHubUnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient()
	hub.Register(client)
	hub.Unregister(client)

	select {
	case _, ok := <-client.send:
		if ok {
			t.Fatal("expected closed channel after unregister")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("send channel not closed after unregister")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestHubCloseDisconnectsServingClients(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	go hub.Run()

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	rr := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		ServeSSE(rr, req, hub)
	}()

	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	// Closing the hub must release handlers still serving open streams
	hub.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not return after hub close")
	}
}

func TestHubCloseIsIdempotent(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	go hub.Run()

	hub.Close()
	hub.Close()
}

func TestHubRegisterUnregisterAfterClose(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	hub.Close()

	// With the run loop gone these must return, not block forever
	done := make(chan struct{})
	go func() {
		defer close(done)
		client := NewClient()
		hub.Register(client)
		hub.Unregister(client)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("register/unregister blocked after close")
	}
}

func TestRelayTranslatesTopics(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient()
	hub.Register(client)

	broker := notify.NewMemoryBroker(testutil.NopLogger())
	defer func() { _ = broker.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := Relay(ctx, broker, hub, testutil.NopLogger()); err != nil {
		t.Fatalf("relay failed: %v", err)
	}

	if err := broker.Publish(ctx, notify.TopicState); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case msg := <-client.send:
		expected := "event: state-changed\ndata: {\"topic\":\"state\"}\n\n"
		if string(msg) != expected {
			t.Errorf("got %q, want %q", string(msg), expected)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for relayed event")
	}
}
