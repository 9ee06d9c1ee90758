// Package monitor keeps the liveness flag for the configured server peer.
// The router consults it before every client-mode write; a periodic tick
// refreshes it for status displays.
package monitor

import (
	"context"
	"sync"
	"time"

	"golang.org/x/exp/slog"
)

// Prober performs one health probe against the peer.
type Prober interface {
	Ping(ctx context.Context) error
}

// State is a snapshot of the connection. A new monitor starts optimistic
// (Online, never checked) so the first write is not blocked spuriously.
type State struct {
	Online    bool
	LastCheck time.Time
	LastError string
	Checking  bool
}

type Options struct {
	// Interval between periodic probes. Default 10s.
	Interval time.Duration
	// Debounce window for on-demand checks: a check landing inside it
	// returns the cached state without probing. Default 5s.
	Debounce time.Duration
}

func (o Options) interval() time.Duration {
	if o.Interval > 0 {
		return o.Interval
	}
	return 10 * time.Second
}

func (o Options) debounce() time.Duration {
	if o.Debounce > 0 {
		return o.Debounce
	}
	return 5 * time.Second
}

type Monitor struct {
	prober Prober
	log    *slog.Logger
	opts   Options
	clock  func() time.Time

	mu    sync.RWMutex
	state State
}

// New builds a monitor around a prober. prober may be nil when no server is
// configured; the monitor then reports offline without probing.
func New(prober Prober, log *slog.Logger, opts Options) *Monitor {
	return &Monitor{
		prober: prober,
		log:    log.With(slog.String("component", "connection_monitor")),
		opts:   opts,
		clock:  time.Now,
		state:  State{Online: true},
	}
}

// Check is the debounced on-demand probe. When the last completed check is
// inside the debounce window the cached verdict is returned, bounding the
// probe rate under write-heavy interaction.
func (m *Monitor) Check(ctx context.Context) bool {
	m.mu.Lock()
	if m.prober == nil {
		m.state.Online = false
		m.state.LastError = "servidor não configurado (no server configured)"
		m.mu.Unlock()
		return false
	}
	if !m.state.LastCheck.IsZero() && m.clock().Sub(m.state.LastCheck) < m.opts.debounce() {
		online := m.state.Online
		m.mu.Unlock()
		return online
	}
	m.state.Checking = true
	m.mu.Unlock()

	return m.probe(ctx)
}

// Run drives the periodic probe until the context is cancelled. Only
// started while the instance runs in client mode.
func (m *Monitor) Run(ctx context.Context) {
	if m.prober == nil {
		return
	}

	ticker := time.NewTicker(m.opts.interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.probe(ctx)
		}
	}
}

// MarkOnline records a successful remote operation observed by the router.
func (m *Monitor) MarkOnline() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Online = true
	m.state.LastError = ""
	m.state.LastCheck = m.clock()
}

// MarkOffline records a failed remote operation observed by the router.
func (m *Monitor) MarkOffline(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Online = false
	if err != nil {
		m.state.LastError = err.Error()
	}
	m.state.LastCheck = m.clock()
}

// State returns a copy of the current connection state.
func (m *Monitor) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Monitor) probe(ctx context.Context) bool {
	err := m.prober.Ping(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Checking = false
	m.state.LastCheck = m.clock()
	if err != nil {
		m.state.Online = false
		m.state.LastError = err.Error()
		m.log.Debug("servidor inacessível", "error", err)
		return false
	}
	m.state.Online = true
	m.state.LastError = ""
	return true
}
