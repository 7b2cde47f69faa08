// FilePath: internal/view/poller.go
package view

import (
	"context"
	"sync"
	"time"

	nuts "github.com/vaudience/go-nuts"
)

// PollState is the realtime refresh state of a view.
type PollState int

const (
	// StateIdle means no selection has loaded; the poller must not run.
	StateIdle PollState = iota
	// StateLoaded means a result set exists and polling may start.
	StateLoaded
	// StatePolling means the periodic refresh timer is running.
	StatePolling
)

// Poller drives the periodic realtime refresh. Polling starts only
// from Loaded so the timer never fires before any selection exists,
// and the ticker is always torn down on Clear/Close.
type Poller struct {
	mu       sync.Mutex
	state    PollState
	interval time.Duration
	refresh  func(ctx context.Context)
	stop     chan struct{}
}

// NewPoller creates a poller calling refresh every interval while in
// the Polling state.
func NewPoller(interval time.Duration, refresh func(ctx context.Context)) *Poller {
	return &Poller{
		state:    StateIdle,
		interval: interval,
		refresh:  refresh,
	}
}

// State returns the current poll state.
func (p *Poller) State() PollState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// MarkLoaded records that a result set exists. Only the Idle state
// advances; an already-polling view keeps polling.
func (p *Poller) MarkLoaded() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateIdle {
		p.state = StateLoaded
	}
}

// Start begins periodic refreshing. It reports false unless the poller
// is in the Loaded state.
func (p *Poller) Start() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateLoaded {
		return false
	}
	p.state = StatePolling
	p.stop = make(chan struct{})
	go p.run(p.stop)
	return true
}

func (p *Poller) run(stop chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), p.interval)
			p.refresh(ctx)
			cancel()
		case <-stop:
			return
		}
	}
}

// Clear returns the poller to Idle, stopping the refresh timer. Called
// when the selection is cleared or the hosting view goes away.
func (p *Poller) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StatePolling && p.stop != nil {
		close(p.stop)
		p.stop = nil
		nuts.L.Debugf("[Poller] Refresh timer stopped")
	}
	p.state = StateIdle
}

// Close releases the poller's timer resources.
func (p *Poller) Close() {
	p.Clear()
}
