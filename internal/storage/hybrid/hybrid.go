// Package hybrid is the router every collection's persistence layer calls.
// It decides between the local and remote backend on every call, since the
// network mode can change between calls and is never cached, and applies
// the write-blocking policy when the configured server is unreachable.
package hybrid

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"folharh/internal/storage"
	"folharh/internal/storage/monitor"
)

// Router implements storage.Adapter. All collaborators are injected; there
// is no ambient mode or connection state.
type Router struct {
	local   storage.Adapter
	remote  storage.Adapter
	monitor *monitor.Monitor
	network func() storage.NetworkConfig
	log     *slog.Logger
}

func New(local, remote storage.Adapter, mon *monitor.Monitor, network func() storage.NetworkConfig, log *slog.Logger) *Router {
	return &Router{
		local:   local,
		remote:  remote,
		monitor: mon,
		network: network,
		log:     log.With(slog.String("component", "hybrid_router")),
	}
}

// Get reads from the server in client mode, otherwise locally. A failing
// remote read marks the connection offline and yields "no data", never a
// stale local value that could diverge from the authoritative server.
func (r *Router) Get(ctx context.Context, collection string) (string, error) {
	if r.clientMode() {
		data, err := r.remote.Get(ctx, collection)
		if err != nil {
			r.monitor.MarkOffline(err)
			r.log.Info("leitura remota falhou", "collection", collection, "error", err)
			return "", nil
		}
		r.monitor.MarkOnline()
		return data, nil
	}
	return r.local.Get(ctx, collection)
}

// Set writes to the server in client mode, otherwise locally. Before a
// remote write the monitor is consulted (debounced): a peer already known
// to be offline blocks the write with storage.ErrOffline, distinguishable
// from a write that was attempted and failed.
func (r *Router) Set(ctx context.Context, collection string, data string) error {
	if r.clientMode() {
		if !r.monitor.Check(ctx) {
			return fmt.Errorf("%w: gravação bloqueada, tente novamente mais tarde (write blocked, try again later)", storage.ErrOffline)
		}
		if err := r.remote.Set(ctx, collection, data); err != nil {
			r.monitor.MarkOffline(err)
			return fmt.Errorf("erro ao gravar no servidor: %w", err)
		}
		r.monitor.MarkOnline()
		return nil
	}
	return r.local.Set(ctx, collection, data)
}

// Remove routes like the other operations, with no blocking check: it only
// clears persisted state and is not a critical path.
func (r *Router) Remove(ctx context.Context, collection string) error {
	if r.clientMode() {
		return r.remote.Remove(ctx, collection)
	}
	return r.local.Remove(ctx, collection)
}

// Connection exposes the monitor's current state for status displays.
func (r *Router) Connection() monitor.State {
	return r.monitor.State()
}

func (r *Router) clientMode() bool {
	return r.remote != nil && r.network().IsClient()
}
