// Package remote serves collections from another instance of the
// application running in server mode on the local network. It never falls
// back to local data: a client that cannot reach its server sees an empty
// state rather than a possibly divergent cache.
package remote

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"folharh/internal/storage"
	"folharh/internal/storage/mapper"
	"folharh/internal/storage/reconcile"
)

type Backend struct {
	client  *Client
	mappers *mapper.Registry
	log     *slog.Logger
}

func New(client *Client, mappers *mapper.Registry, log *slog.Logger) *Backend {
	return &Backend{
		client:  client,
		mappers: mappers,
		log:     log.With(slog.String("component", "remote_backend")),
	}
}

// Client returns the underlying table client, which also carries the
// health probe the connection monitor uses.
func (b *Backend) Client() *Client {
	return b.client
}

// Get fetches the peer's full row set and assembles the collection's
// envelope with the same shape rules the local backend applies. Any failure
// is returned to the router, which maps it to "no data" after recording the
// peer as offline.
func (b *Backend) Get(ctx context.Context, collection string) (string, error) {
	spec, ok := storage.SpecFor(collection)
	if !ok {
		return "", nil
	}

	rows, err := b.client.FetchAll(ctx, spec.Table)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}

	m := b.mappers.For(collection)
	records := make([]storage.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, m.FromRow(row))
	}

	env, err := spec.AssembleEnvelope(records)
	if err != nil {
		return "", err
	}
	return env.Encode()
}

// Set reconciles the incoming snapshot against the peer's current rows.
// The current set is fetched fresh on every call, so a retried Set is
// idempotent even after a partial failure. Individual row failures do not
// stop the remaining operations; they are joined and surfaced to the caller.
func (b *Backend) Set(ctx context.Context, collection string, data string) error {
	spec, ok := storage.SpecFor(collection)
	if !ok {
		return nil
	}

	env, err := storage.ParseEnvelope(data)
	if err != nil {
		return err
	}
	records, err := spec.ExtractRecords(env)
	if err != nil {
		return err
	}

	m := b.mappers.For(collection)
	rows := make([]storage.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, m.ToRow(rec))
	}

	existing, err := b.client.FetchAll(ctx, spec.Table)
	if err != nil {
		return fmt.Errorf("erro ao ler estado atual do servidor: %w", err)
	}

	plan := reconcile.Diff(existing, rows)
	var failures []error
	for _, row := range plan.Inserts {
		if err := b.client.Insert(ctx, spec.Table, row); err != nil {
			b.log.Warn("erro ao inserir no servidor", "collection", collection,
				"id", row["id"], "error", err)
			failures = append(failures, err)
		}
	}
	for _, row := range plan.Updates {
		id, _ := row["id"].(string)
		if err := b.client.Update(ctx, spec.Table, id, row); err != nil {
			b.log.Warn("erro ao atualizar no servidor", "collection", collection,
				"id", id, "error", err)
			failures = append(failures, err)
		}
	}
	for _, id := range plan.Deletes {
		if err := b.client.Delete(ctx, spec.Table, id); err != nil {
			b.log.Warn("erro ao apagar no servidor", "collection", collection,
				"id", id, "error", err)
			failures = append(failures, err)
		}
	}

	return errors.Join(failures...)
}

// Remove has no remote counterpart: it clears a local cache key, and the
// server's data is only ever changed through Set reconciliation.
func (b *Backend) Remove(_ context.Context, collection string) error {
	b.log.Debug("remove ignorado em modo cliente", "collection", collection)
	return nil
}
