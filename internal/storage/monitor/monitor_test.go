package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/exp/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProber struct {
	err   error
	calls int
}

func (p *fakeProber) Ping(_ context.Context) error {
	p.calls++
	return p.err
}

func TestMonitor_Check_Debounce(t *testing.T) {
	prober := &fakeProber{}
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	m := New(prober, slog.Default(), Options{Debounce: 5 * time.Second})
	m.clock = func() time.Time { return now }

	ctx := context.Background()

	// First check probes.
	assert.True(t, m.Check(ctx))
	assert.Equal(t, 1, prober.calls)

	// Second check inside the window returns the cached verdict.
	now = now.Add(2 * time.Second)
	assert.True(t, m.Check(ctx))
	assert.Equal(t, 1, prober.calls)

	// Past the window a new probe happens.
	now = now.Add(4 * time.Second)
	assert.True(t, m.Check(ctx))
	assert.Equal(t, 2, prober.calls)
}

func TestMonitor_Check_CachesOfflineVerdict(t *testing.T) {
	prober := &fakeProber{err: errors.New("connection refused")}
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	m := New(prober, slog.Default(), Options{Debounce: 5 * time.Second})
	m.clock = func() time.Time { return now }

	ctx := context.Background()

	assert.False(t, m.Check(ctx))
	assert.Equal(t, 1, prober.calls)

	// The failure is cached: no second probe inside the window.
	now = now.Add(time.Second)
	assert.False(t, m.Check(ctx))
	assert.Equal(t, 1, prober.calls)

	state := m.State()
	assert.False(t, state.Online)
	assert.Contains(t, state.LastError, "connection refused")
}

func TestMonitor_Check_NoProber(t *testing.T) {
	m := New(nil, slog.Default(), Options{})

	assert.False(t, m.Check(context.Background()))
	state := m.State()
	assert.False(t, state.Online)
	assert.NotEmpty(t, state.LastError)
}

func TestMonitor_StartsOptimistic(t *testing.T) {
	m := New(&fakeProber{}, slog.Default(), Options{})

	state := m.State()
	assert.True(t, state.Online)
	assert.True(t, state.LastCheck.IsZero())
}

func TestMonitor_MarkOfflineSeedsDebounce(t *testing.T) {
	prober := &fakeProber{}
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	m := New(prober, slog.Default(), Options{Debounce: 5 * time.Second})
	m.clock = func() time.Time { return now }

	// A failed router operation marks the peer offline; a check right
	// after trusts that verdict instead of probing again.
	m.MarkOffline(errors.New("timeout"))
	assert.False(t, m.Check(context.Background()))
	assert.Equal(t, 0, prober.calls)
}

func TestMonitor_MarkOnlineClearsError(t *testing.T) {
	m := New(&fakeProber{}, slog.Default(), Options{})
	m.MarkOffline(errors.New("timeout"))
	require.False(t, m.State().Online)

	m.MarkOnline()
	state := m.State()
	assert.True(t, state.Online)
	assert.Empty(t, state.LastError)
}

func TestMonitor_Run_Periodic(t *testing.T) {
	prober := &fakeProber{}
	m := New(prober, slog.Default(), Options{Interval: 10 * time.Millisecond})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	m.Run(ctx)

	assert.GreaterOrEqual(t, prober.calls, 2)
}
