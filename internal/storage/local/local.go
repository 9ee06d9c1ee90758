// Package local is the default persistence backend, used while the instance
// runs standalone or as the network server. Reads come from the fast KV
// layer; the durable row store mirrors every write best-effort and serves
// as the recovery source when the KV layer is empty.
package local

import (
	"context"

	"golang.org/x/exp/slog"

	"folharh/internal/storage"
	"folharh/internal/storage/mapper"
	"folharh/internal/storage/reconcile"
)

type Backend struct {
	kv      *KV
	durable storage.RowStore
	mappers *mapper.Registry
	tenant  func() string
	log     *slog.Logger
}

// New builds the backend. durable may be nil when the embedded database is
// unavailable; the KV layer then carries everything alone. tenant returns
// the currently selected province and is consulted on every call.
func New(kv *KV, durable storage.RowStore, mappers *mapper.Registry, tenant func() string, log *slog.Logger) *Backend {
	return &Backend{
		kv:      kv,
		durable: durable,
		mappers: mappers,
		tenant:  tenant,
		log:     log.With(slog.String("component", "local_backend")),
	}
}

// Get serves the envelope from the KV layer, falling back to reassembling
// it from durable rows when the KV layer has nothing. Both layers empty is
// "no data", not an error.
func (b *Backend) Get(ctx context.Context, collection string) (string, error) {
	province := b.tenant()

	if data, ok := b.kv.Get(nsKey(province, collection)); ok {
		return data, nil
	}

	if province == "" || b.durable == nil {
		return "", nil
	}
	spec, ok := storage.SpecFor(collection)
	if !ok {
		return "", nil
	}

	rows, err := b.durable.FetchAll(ctx, spec.Table, province)
	if err != nil {
		b.log.Warn("recuperação a partir da base de dados falhou",
			"collection", collection, "error", err)
		return "", nil
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
		b.log.Warn("erro ao montar envelope recuperado",
			"collection", collection, "error", err)
		return "", nil
	}
	data, err := env.Encode()
	if err != nil {
		return "", err
	}

	b.log.Info("coleção recuperada da base de dados",
		"collection", collection, "rows", len(rows))
	return data, nil
}

// Set writes the raw envelope to the KV layer first; that write is the
// operation's outcome. The durable mirror runs afterwards and its failures
// are logged, never propagated: the KV layer stays authoritative.
func (b *Backend) Set(ctx context.Context, collection string, data string) error {
	province := b.tenant()

	if err := b.kv.Set(nsKey(province, collection), data); err != nil {
		return err
	}

	if province == "" || b.durable == nil {
		return nil
	}
	b.mirror(ctx, collection, province, data)
	return nil
}

// Remove clears the KV entry only. Durable rows are kept on purpose; an
// explicit purge is a separate administrative operation.
func (b *Backend) Remove(_ context.Context, collection string) error {
	return b.kv.Delete(nsKey(b.tenant(), collection))
}

func (b *Backend) mirror(ctx context.Context, collection, province, data string) {
	spec, ok := storage.SpecFor(collection)
	if !ok {
		return
	}

	env, err := storage.ParseEnvelope(data)
	if err != nil {
		b.log.Warn("envelope ilegível, espelho ignorado",
			"collection", collection, "error", err)
		return
	}
	records, err := spec.ExtractRecords(env)
	if err != nil {
		b.log.Warn("estado ilegível, espelho ignorado",
			"collection", collection, "error", err)
		return
	}

	m := b.mappers.For(collection)
	rows := make([]storage.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, m.ToRow(rec))
	}

	if spec.SingleRecord {
		b.upsertSingle(ctx, spec, province, rows)
		return
	}

	existing, err := b.durable.FetchAll(ctx, spec.Table, province)
	if err != nil {
		b.log.Warn("erro ao ler estado atual da base de dados",
			"collection", collection, "error", err)
		return
	}

	plan := reconcile.Diff(existing, rows)
	for _, row := range plan.Inserts {
		if err := b.durable.Insert(ctx, spec.Table, province, row); err != nil {
			b.log.Warn("erro ao inserir linha", "collection", collection,
				"id", row["id"], "error", err)
		}
	}
	for _, row := range plan.Updates {
		id, _ := row["id"].(string)
		if err := b.durable.Update(ctx, spec.Table, province, id, row); err != nil {
			b.log.Warn("erro ao atualizar linha", "collection", collection,
				"id", id, "error", err)
		}
	}
	for _, id := range plan.Deletes {
		if err := b.durable.Delete(ctx, spec.Table, province, id); err != nil {
			b.log.Warn("erro ao apagar linha", "collection", collection,
				"id", id, "error", err)
		}
	}
}

// upsertSingle handles single-record collections (settings): update or
// insert against the fixed synthetic id instead of diffing a set.
func (b *Backend) upsertSingle(ctx context.Context, spec *storage.Spec, province string, rows []storage.Row) {
	if len(rows) == 0 {
		return
	}
	row := rows[0]

	existing, err := b.durable.FetchByID(ctx, spec.Table, province, spec.FixedID)
	if err != nil {
		b.log.Warn("erro ao consultar registo único",
			"collection", spec.Collection, "error", err)
		return
	}
	if existing == nil {
		err = b.durable.Insert(ctx, spec.Table, province, row)
	} else {
		err = b.durable.Update(ctx, spec.Table, province, spec.FixedID, row)
	}
	if err != nil {
		b.log.Warn("erro ao gravar registo único",
			"collection", spec.Collection, "error", err)
	}
}

func nsKey(province, collection string) string {
	if province == "" {
		return collection
	}
	return province + ":" + collection
}
