// Package feed keeps a client-side view of the leaderboard fresh. It
// listens to the server's event stream and coalesces bursts of change
// notifications into single refetches, falling back to polling while
// the stream is down.
package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jcruden/live-leaderboard/internal/api/response"
	"github.com/jcruden/live-leaderboard/internal/client"
	"github.com/jcruden/live-leaderboard/internal/sse"
)

// Source is the subset of the API client the feed needs
type Source interface {
	Players(ctx context.Context, limit int) ([]response.Player, error)
	Events(ctx context.Context) (<-chan client.Event, error)
}

const (
	defaultDebounce     = 150 * time.Millisecond
	defaultPollInterval = 5 * time.Second
	reconnectDelay      = 2 * time.Second
)

// Options tunes feed timing. Zero values take the defaults.
type Options struct {
	// Debounce is how long to coalesce change notifications before
	// refetching
	Debounce time.Duration
	// PollInterval is the refresh cadence while the event stream is
	// disconnected
	PollInterval time.Duration
	// Limit caps the number of players fetched per refresh
	Limit int
}

// Feed maintains a live leaderboard snapshot
type Feed struct {
	source   Source
	logger   *slog.Logger
	opts     Options
	onUpdate func([]response.Player)
	onState  func()

	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	players   []response.Player
	connected bool
	debounce  *time.Timer
}

// New creates a feed over the given source. onUpdate is invoked with
// the fresh snapshot after every successful refresh; it may be nil.
func New(source Source, logger *slog.Logger, opts Options, onUpdate func([]response.Player)) *Feed {
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}

	return &Feed{
		source:   source,
		logger:   logger,
		opts:     opts,
		onUpdate: onUpdate,
	}
}

// OnStateChange registers a hook invoked when the server signals a lock
// state change. Must be called before Start.
func (f *Feed) OnStateChange(fn func()) {
	f.onState = fn
}

// Start begins streaming. The initial snapshot is fetched synchronously
// so callers see data immediately.
func (f *Feed) Start(ctx context.Context) {
	ctx, f.cancel = context.WithCancel(ctx)

	f.refresh(ctx)

	f.wg.Add(2)
	go f.streamLoop(ctx)
	go f.pollLoop(ctx)
}

// Close stops streaming and polling and waits for the loops to exit
func (f *Feed) Close() {
	if f.cancel != nil {
		f.cancel()
	}
	f.wg.Wait()

	f.mu.Lock()
	if f.debounce != nil {
		f.debounce.Stop()
		f.debounce = nil
	}
	f.mu.Unlock()
}

// Snapshot returns the most recently fetched leaderboard
func (f *Feed) Snapshot() []response.Player {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]response.Player, len(f.players))
	copy(out, f.players)
	return out
}

// Connected reports whether the event stream is currently up
func (f *Feed) Connected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

// streamLoop keeps an event stream open, reconnecting on failure
func (f *Feed) streamLoop(ctx context.Context) {
	defer f.wg.Done()

	for {
		events, err := f.source.Events(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			f.logger.Warn("event stream connect failed", slog.String("error", err.Error()))
		} else {
			f.setConnected(true)
			f.consume(ctx, events)
			f.setConnected(false)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

// consume reads events until the stream closes or the context ends
func (f *Feed) consume(ctx context.Context, events <-chan client.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			switch evt.Name {
			case sse.EventPlayersChanged:
				f.scheduleRefresh(ctx)
			case sse.EventStateChanged:
				if f.onState != nil {
					f.onState()
				}
			}
		}
	}
}

// scheduleRefresh arms the debounce timer. A notification arriving
// while the timer is pending resets it, so a burst of changes produces
// one refetch.
func (f *Feed) scheduleRefresh(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.debounce != nil {
		f.debounce.Stop()
	}
	f.debounce = time.AfterFunc(f.opts.Debounce, func() {
		if ctx.Err() == nil {
			f.refresh(ctx)
		}
	})
}

// pollLoop refetches on a timer while the event stream is down
func (f *Feed) pollLoop(ctx context.Context) {
	defer f.wg.Done()

	ticker := time.NewTicker(f.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !f.Connected() {
				f.refresh(ctx)
			}
		}
	}
}

func (f *Feed) refresh(ctx context.Context) {
	players, err := f.source.Players(ctx, f.opts.Limit)
	if err != nil {
		if ctx.Err() == nil {
			f.logger.Warn("leaderboard refresh failed", slog.String("error", err.Error()))
		}
		return
	}

	f.mu.Lock()
	f.players = players
	f.mu.Unlock()

	if f.onUpdate != nil {
		f.onUpdate(players)
	}
}

func (f *Feed) setConnected(v bool) {
	f.mu.Lock()
	f.connected = v
	f.mu.Unlock()
}
