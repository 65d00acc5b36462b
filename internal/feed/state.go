package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jcruden/live-leaderboard/internal/api/response"
)

const defaultStateInterval = 2500 * time.Millisecond

// StateSource is the subset of the API client the state poller needs
type StateSource interface {
	State(ctx context.Context) (*response.AppState, error)
}

// StatePoller watches the scoring lock state while an admin session is
// active. The lock can flip under an admin at any moment, so the state
// is polled on a short interval rather than trusted from the last
// response.
type StatePoller struct {
	source   StateSource
	logger   *slog.Logger
	interval time.Duration
	onChange func(response.AppState)

	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu    sync.Mutex
	state *response.AppState
}

// NewStatePoller creates a poller. onChange fires only when the fetched
// state differs from the previous one; it may be nil. A non-positive
// interval takes the default.
func NewStatePoller(source StateSource, logger *slog.Logger, interval time.Duration, onChange func(response.AppState)) *StatePoller {
	if interval <= 0 {
		interval = defaultStateInterval
	}

	return &StatePoller{
		source:   source,
		logger:   logger,
		interval: interval,
		onChange: onChange,
	}
}

// Start fetches the state once, then polls until Stop
func (p *StatePoller) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)

	p.poll(ctx)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.poll(ctx)
			}
		}
	}()
}

// Stop halts polling and waits for the loop to exit
func (p *StatePoller) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}

// State returns the most recently fetched lock state, or nil before the
// first successful poll
func (p *StatePoller) State() *response.AppState {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == nil {
		return nil
	}
	s := *p.state
	return &s
}

func (p *StatePoller) poll(ctx context.Context) {
	state, err := p.source.State(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warn("state poll failed", slog.String("error", err.Error()))
		}
		return
	}

	p.mu.Lock()
	changed := p.state == nil || p.state.IsLocked != state.IsLocked
	p.state = state
	p.mu.Unlock()

	if changed && p.onChange != nil {
		p.onChange(*state)
	}
}
