package client

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/exp/slog"

	"folharh/internal/app/client/config"
	"folharh/internal/domain/settings"
	"folharh/internal/infrastructure/storage/sqlite"
	"folharh/internal/storage"
	"folharh/internal/storage/hybrid"
	"folharh/internal/storage/local"
	"folharh/internal/storage/mapper"
	"folharh/internal/storage/monitor"
	"folharh/internal/storage/remote"
)

// provinceKey is where the selected tenant lives in the fast store. It is
// deliberately outside the per-province namespaces: the tenant choice is
// what decides the namespace in the first place.
const provinceKey = "selectedProvince"

// App wires the storage stack of the client: the fast key-value store,
// the durable SQLite mirror, the optional remote backend and the hybrid
// router that picks between them per call.
type App struct {
	config  *config.Config
	log     *slog.Logger
	kv      *local.KV
	durable storage.RowStore
	remote  *remote.Client
	monitor *monitor.Monitor
	router  *hybrid.Router
	cancel  context.CancelFunc
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	kv, err := local.OpenKV(cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir o armazenamento local: %w", err)
	}

	app := &App{
		config: cfg,
		log:    log,
		kv:     kv,
	}

	// The durable mirror is best effort. Without it the fast store still
	// serves every read and write, there is just nothing to recover from.
	durable, err := sqlite.New(cfg.SQLitePath)
	if err != nil {
		log.Warn("base de dados SQLite indisponível, a funcionar só com o armazenamento rápido", "error", err)
	} else {
		app.durable = durable
	}

	mappers := mapper.NewRegistry()
	localBackend := local.New(kv, app.durable, mappers, app.Tenant, log)

	var remoteBackend storage.Adapter
	var prober monitor.Prober
	if nc := app.Network(); nc.ServerIP != "" {
		client := remote.NewClient(nc.ServerIP, nc.ServerPort, log)
		app.remote = client
		remoteBackend = remote.New(client, mappers, log)
		prober = client
	}

	app.monitor = monitor.New(prober, log, monitor.Options{})
	app.router = hybrid.New(localBackend, remoteBackend, app.monitor, app.Network, log)

	if app.Network().IsClient() {
		ctx, cancel := context.WithCancel(context.Background())
		app.cancel = cancel
		go app.monitor.Run(ctx)
	}

	return app, nil
}

// Storage returns the routing adapter the rest of the application reads
// and writes through.
func (a *App) Storage() storage.Adapter {
	return a.router
}

// Connection reports the current server connection state.
func (a *App) Connection() monitor.State {
	return a.monitor.State()
}

// Tenant returns the selected province scope, falling back to the
// configured default when none has been chosen yet.
func (a *App) Tenant() string {
	if p, _ := a.kv.Get(provinceKey); p != "" {
		return p
	}
	return a.config.Province
}

// SetTenant persists the selected province scope.
func (a *App) SetTenant(province string) error {
	return a.kv.Set(provinceKey, province)
}

// Network resolves the routing configuration: the persisted company
// settings win, the bootstrap config fills in until they exist.
func (a *App) Network() storage.NetworkConfig {
	if env := a.settingsEnvelope(); env != nil {
		if s, err := settings.FromEnvelope(env); err == nil && s.NetworkMode != "" {
			return s.Network()
		}
	}

	mode := storage.NetworkMode(a.config.NetworkMode)
	switch mode {
	case storage.ModeStandalone, storage.ModeServer, storage.ModeClient:
	default:
		mode = storage.ModeStandalone
	}
	return storage.NetworkConfig{
		Mode:       mode,
		ServerIP:   a.config.ServerIP,
		ServerPort: a.config.ServerPort,
	}
}

// settingsEnvelope reads the settings collection straight from the fast
// store. Routing decisions cannot go through the router itself.
func (a *App) settingsEnvelope() *storage.Envelope {
	key := "settings"
	if p := a.Tenant(); p != "" {
		key = p + ":settings"
	}

	raw, ok := a.kv.Get(key)
	if !ok || raw == "" {
		return nil
	}
	env, err := storage.ParseEnvelope(raw)
	if err != nil {
		return nil
	}
	return env
}

// Envelope fetches and parses one collection's envelope through the
// router. A collection with no data yet yields an empty envelope.
func (a *App) Envelope(ctx context.Context, collection string) (*storage.Envelope, error) {
	raw, err := a.router.Get(ctx, collection)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return &storage.Envelope{State: map[string]json.RawMessage{}}, nil
	}
	return storage.ParseEnvelope(raw)
}

// SaveEnvelope writes one collection's envelope through the router with
// the version advanced.
func (a *App) SaveEnvelope(ctx context.Context, collection string, env *storage.Envelope) error {
	env.Version++
	raw, err := env.Encode()
	if err != nil {
		return fmt.Errorf("erro ao codificar o estado de %s: %w", collection, err)
	}
	return a.router.Set(ctx, collection, raw)
}

// Records extracts the full record set of a collection, mostly for
// counting and diagnostics.
func (a *App) Records(ctx context.Context, collection string) ([]storage.Record, error) {
	spec, ok := storage.SpecFor(collection)
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrUnknownTable, collection)
	}

	env, err := a.Envelope(ctx, collection)
	if err != nil {
		return nil, err
	}
	return spec.ExtractRecords(env)
}

// Close stops the connection monitor and releases the durable store.
func (a *App) Close() error {
	if a.cancel != nil {
		a.cancel()
	}
	if a.durable != nil {
		return a.durable.Close()
	}
	return nil
}
