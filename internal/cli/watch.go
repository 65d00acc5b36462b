package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jcruden/live-leaderboard/internal/api/response"
	"github.com/jcruden/live-leaderboard/internal/feed"
)

func newWatchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the leaderboard live",
		Long: `Stream leaderboard updates in real time.

Uses the server's event stream when available and falls back to polling
while disconnected. With an active session the scoring lock state is
polled as well. Press Ctrl+C to stop.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchLeaderboard(limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum players to show (0 for server default)")

	return cmd
}

// watchSource is the client surface the watch loop needs
type watchSource interface {
	feed.Source
	feed.StateSource
}

// watcher couples the leaderboard feed with a lock-state poller. The
// poller runs only while a session is held: the lock can flip while the
// event stream is down, and an authenticated watcher acting on stale
// state would be surprised by rejected deltas.
type watcher struct {
	feed   *feed.Feed
	poller *feed.StatePoller
}

// newWatcher builds the watch pipeline. A zero stateInterval takes the
// poller's default; authed selects polling over push-only state updates.
func newWatcher(src watchSource, logger *slog.Logger, opts feed.Options, stateInterval time.Duration, authed bool, renderPlayers func([]response.Player), renderState func(response.AppState)) *watcher {
	w := &watcher{
		feed: feed.New(src, logger, opts, renderPlayers),
	}

	if authed {
		w.poller = feed.NewStatePoller(src, logger, stateInterval, renderState)
	} else {
		// Without a session the lock state only matters for display, so
		// push notifications are enough.
		w.feed.OnStateChange(func() {
			state, err := src.State(context.Background())
			if err != nil {
				return
			}
			renderState(*state)
		})
	}

	return w
}

// Start begins the feed and, for authenticated sessions, the state poller
func (w *watcher) Start(ctx context.Context) {
	w.feed.Start(ctx)
	if w.poller != nil {
		w.poller.Start(ctx)
	}
}

// Close tears down the poller and the feed
func (w *watcher) Close() {
	if w.poller != nil {
		w.poller.Stop()
	}
	w.feed.Close()
}

func watchLeaderboard(limit int) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	out := NewOutput(cfg.Output)
	renderPlayers := func(players []response.Player) {
		fmt.Printf("--- %s ---\n", time.Now().Format("15:04:05"))
		out.Print(players)
	}
	renderState := func(state response.AppState) {
		out.Print(state)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := newWatcher(api, logger, feed.Options{Limit: limit}, 0, cfg.Token != "", renderPlayers, renderState)

	w.Start(ctx)
	defer w.Close()

	<-ctx.Done()
	fmt.Println("\nDisconnected")
	return nil
}
