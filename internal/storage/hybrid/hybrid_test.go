package hybrid

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/exp/slog"

	"folharh/internal/storage"
	"folharh/internal/storage/monitor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdapter struct {
	data   map[string]string
	getErr error
	setErr error
	gets   int
	sets   int
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{data: map[string]string{}}
}

func (a *fakeAdapter) Get(_ context.Context, collection string) (string, error) {
	a.gets++
	if a.getErr != nil {
		return "", a.getErr
	}
	return a.data[collection], nil
}

func (a *fakeAdapter) Set(_ context.Context, collection string, data string) error {
	a.sets++
	if a.setErr != nil {
		return a.setErr
	}
	a.data[collection] = data
	return nil
}

func (a *fakeAdapter) Remove(_ context.Context, collection string) error {
	delete(a.data, collection)
	return nil
}

type okProber struct{}

func (okProber) Ping(_ context.Context) error { return nil }

func clientConfig() storage.NetworkConfig {
	return storage.NetworkConfig{Mode: storage.ModeClient, ServerIP: "10.0.0.5", ServerPort: 9480}
}

func standaloneConfig() storage.NetworkConfig {
	return storage.NetworkConfig{Mode: storage.ModeStandalone}
}

func TestRouter_StandaloneUsesLocalOnly(t *testing.T) {
	local := newFakeAdapter()
	remote := newFakeAdapter()
	mon := monitor.New(okProber{}, slog.Default(), monitor.Options{})
	router := New(local, remote, mon, standaloneConfig, slog.Default())

	ctx := context.Background()
	require.NoError(t, router.Set(ctx, "employees", `{"state":{},"version":1}`))
	data, err := router.Get(ctx, "employees")
	require.NoError(t, err)

	assert.Equal(t, `{"state":{},"version":1}`, data)
	assert.Zero(t, remote.gets)
	assert.Zero(t, remote.sets)
}

func TestRouter_ClientUsesRemoteOnly(t *testing.T) {
	local := newFakeAdapter()
	local.data["employees"] = "local-copy"
	remote := newFakeAdapter()
	remote.data["employees"] = "remote-copy"
	mon := monitor.New(okProber{}, slog.Default(), monitor.Options{})
	router := New(local, remote, mon, clientConfig, slog.Default())

	data, err := router.Get(context.Background(), "employees")
	require.NoError(t, err)

	assert.Equal(t, "remote-copy", data)
	assert.Zero(t, local.gets)
}

func TestRouter_RemoteGetFailureYieldsNoData(t *testing.T) {
	local := newFakeAdapter()
	local.data["branches"] = "stale-local"
	remote := newFakeAdapter()
	remote.getErr = errors.New("connection refused")
	mon := monitor.New(okProber{}, slog.Default(), monitor.Options{})
	router := New(local, remote, mon, clientConfig, slog.Default())

	data, err := router.Get(context.Background(), "branches")

	// No error and no stale local fallback: the caller sees "no data".
	require.NoError(t, err)
	assert.Empty(t, data)
	assert.Zero(t, local.gets)
	assert.False(t, router.Connection().Online)
}

func TestRouter_WriteBlockedWhenOffline(t *testing.T) {
	local := newFakeAdapter()
	remote := newFakeAdapter()
	mon := monitor.New(okProber{}, slog.Default(), monitor.Options{})
	router := New(local, remote, mon, clientConfig, slog.Default())

	// A recent failure makes the monitor report offline without probing.
	mon.MarkOffline(errors.New("timeout"))

	err := router.Set(context.Background(), "employees", "{}")

	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrOffline)
	assert.Zero(t, remote.sets)
	assert.Zero(t, local.sets)
}

func TestRouter_WriteFailureIsNotErrOffline(t *testing.T) {
	local := newFakeAdapter()
	remote := newFakeAdapter()
	remote.setErr = errors.New("disco cheio")
	mon := monitor.New(okProber{}, slog.Default(), monitor.Options{})
	router := New(local, remote, mon, clientConfig, slog.Default())

	err := router.Set(context.Background(), "employees", "{}")

	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrOffline)
}

func TestRouter_ModeReadPerCall(t *testing.T) {
	local := newFakeAdapter()
	remote := newFakeAdapter()
	mon := monitor.New(okProber{}, slog.Default(), monitor.Options{})

	mode := storage.ModeStandalone
	network := func() storage.NetworkConfig {
		return storage.NetworkConfig{Mode: mode, ServerIP: "10.0.0.5", ServerPort: 9480}
	}
	router := New(local, remote, mon, network, slog.Default())

	ctx := context.Background()
	_, err := router.Get(ctx, "employees")
	require.NoError(t, err)
	assert.Equal(t, 1, local.gets)
	assert.Zero(t, remote.gets)

	// Switching configuration changes the target on the very next call.
	mode = storage.ModeClient
	_, err = router.Get(ctx, "employees")
	require.NoError(t, err)
	assert.Equal(t, 1, local.gets)
	assert.Equal(t, 1, remote.gets)
}

func TestRouter_ClientWithoutServerActsStandalone(t *testing.T) {
	local := newFakeAdapter()
	remote := newFakeAdapter()
	mon := monitor.New(okProber{}, slog.Default(), monitor.Options{})
	network := func() storage.NetworkConfig {
		return storage.NetworkConfig{Mode: storage.ModeClient}
	}
	router := New(local, remote, mon, network, slog.Default())

	require.NoError(t, router.Set(context.Background(), "employees", "{}"))
	assert.Equal(t, 1, local.sets)
	assert.Zero(t, remote.sets)
}

func TestRouter_NilRemoteRoutesLocal(t *testing.T) {
	local := newFakeAdapter()
	mon := monitor.New(nil, slog.Default(), monitor.Options{})
	router := New(local, nil, mon, clientConfig, slog.Default())

	require.NoError(t, router.Set(context.Background(), "employees", "{}"))
	assert.Equal(t, 1, local.sets)
}

func TestRouter_RemoveRoutesWithoutBlocking(t *testing.T) {
	local := newFakeAdapter()
	remote := newFakeAdapter()
	remote.data["settings"] = "x"
	mon := monitor.New(okProber{}, slog.Default(), monitor.Options{})
	router := New(local, remote, mon, clientConfig, slog.Default())

	mon.MarkOffline(errors.New("timeout"))

	// Remove is not write-blocked.
	require.NoError(t, router.Remove(context.Background(), "settings"))
	assert.NotContains(t, remote.data, "settings")
}
