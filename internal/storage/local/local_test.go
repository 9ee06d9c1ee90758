package local

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"golang.org/x/exp/slog"

	"folharh/internal/storage"
	"folharh/internal/storage/mapper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRowStore keeps rows per table and province in memory.
type fakeRowStore struct {
	rows     map[string]map[string]storage.Row // table/province -> id -> row
	fetchErr error
}

func newFakeRowStore() *fakeRowStore {
	return &fakeRowStore{rows: map[string]map[string]storage.Row{}}
}

func (s *fakeRowStore) bucket(table, province string) map[string]storage.Row {
	key := table + "/" + province
	if s.rows[key] == nil {
		s.rows[key] = map[string]storage.Row{}
	}
	return s.rows[key]
}

func (s *fakeRowStore) FetchAll(_ context.Context, table, province string) ([]storage.Row, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	var out []storage.Row
	for _, row := range s.bucket(table, province) {
		out = append(out, row)
	}
	return out, nil
}

func (s *fakeRowStore) FetchByID(_ context.Context, table, province, id string) (storage.Row, error) {
	row, ok := s.bucket(table, province)[id]
	if !ok {
		return nil, nil
	}
	return row, nil
}

func (s *fakeRowStore) Insert(_ context.Context, table, province string, row storage.Row) error {
	id, _ := row["id"].(string)
	s.bucket(table, province)[id] = row
	return nil
}

func (s *fakeRowStore) Update(_ context.Context, table, province, id string, row storage.Row) error {
	s.bucket(table, province)[id] = row
	return nil
}

func (s *fakeRowStore) Delete(_ context.Context, table, province, id string) error {
	delete(s.bucket(table, province), id)
	return nil
}

func (s *fakeRowStore) Close() error { return nil }

func newTestBackend(t *testing.T, durable storage.RowStore, province string) *Backend {
	t.Helper()
	kv, err := OpenKV(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)
	return New(kv, durable, mapper.NewRegistry(), func() string { return province }, slog.Default())
}

func TestBackend_SetThenGet(t *testing.T) {
	b := newTestBackend(t, newFakeRowStore(), "Luanda")
	ctx := context.Background()

	data := `{"state":{"branches":[{"id":"br-1","name":"Sede"}]},"version":2}`
	require.NoError(t, b.Set(ctx, "branches", data))

	got, err := b.Get(ctx, "branches")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestBackend_GetNoData(t *testing.T) {
	b := newTestBackend(t, newFakeRowStore(), "Luanda")

	got, err := b.Get(context.Background(), "employees")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBackend_MirrorWritesRows(t *testing.T) {
	store := newFakeRowStore()
	b := newTestBackend(t, store, "Luanda")
	ctx := context.Background()

	data := `{"state":{"branches":[{"id":"br-1","name":"Sede","isHeadquarters":true}]},"version":1}`
	require.NoError(t, b.Set(ctx, "branches", data))

	rows, err := store.FetchAll(ctx, "branches", "Luanda")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sede", rows[0]["name"])
	assert.Equal(t, int64(1), rows[0]["is_headquarters"])
}

func TestBackend_MirrorReconciles(t *testing.T) {
	store := newFakeRowStore()
	b := newTestBackend(t, store, "Luanda")
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "branches",
		`{"state":{"branches":[{"id":"a"},{"id":"b"}]},"version":1}`))
	require.NoError(t, b.Set(ctx, "branches",
		`{"state":{"branches":[{"id":"b"},{"id":"c"}]},"version":2}`))

	rows, err := store.FetchAll(ctx, "branches", "Luanda")
	require.NoError(t, err)

	var ids []string
	for _, row := range rows {
		ids = append(ids, row["id"].(string))
	}
	assert.ElementsMatch(t, []string{"b", "c"}, ids)
}

func TestBackend_RecoveryFromDurable(t *testing.T) {
	store := newFakeRowStore()
	b := newTestBackend(t, store, "Luanda")
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "branches", `{"state":{"branches":[
		{"id":"br-1","name":"Sede","isHeadquarters":true},
		{"id":"br-2","name":"Filial Lobito","isHeadquarters":false}
	]},"version":5}`))

	// Simulate a lost fast store: same durable rows, fresh KV file.
	kv, err := OpenKV(filepath.Join(t.TempDir(), "fresh.json"))
	require.NoError(t, err)
	recovered := New(kv, store, mapper.NewRegistry(), func() string { return "Luanda" }, slog.Default())

	data, err := recovered.Get(ctx, "branches")
	require.NoError(t, err)
	require.NotEmpty(t, data)

	env, err := storage.ParseEnvelope(data)
	require.NoError(t, err)
	// Recovery rebuilds content, not the lost version counter.
	assert.Equal(t, 0, env.Version)

	var branches []storage.Record
	require.NoError(t, json.Unmarshal(env.State["branches"], &branches))
	require.Len(t, branches, 2)

	// The flag was stored as 0/1 but comes back as a boolean.
	byID := map[string]storage.Record{}
	for _, br := range branches {
		byID[br["id"].(string)] = br
	}
	assert.Equal(t, true, byID["br-1"]["isHeadquarters"])
	assert.Equal(t, false, byID["br-2"]["isHeadquarters"])
}

func TestBackend_RecoveryFailureIsNoData(t *testing.T) {
	store := newFakeRowStore()
	store.fetchErr = errors.New("banco de dados bloqueado")
	b := newTestBackend(t, store, "Luanda")

	data, err := b.Get(context.Background(), "branches")
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestBackend_NoTenantSkipsDurable(t *testing.T) {
	store := newFakeRowStore()
	b := newTestBackend(t, store, "")
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "branches",
		`{"state":{"branches":[{"id":"br-1"}]},"version":1}`))

	// Without a province scope nothing is mirrored.
	rows, err := store.FetchAll(ctx, "branches", "")
	require.NoError(t, err)
	assert.Empty(t, rows)

	// The KV layer still serves the value, unnamespaced.
	data, err := b.Get(ctx, "branches")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestBackend_ProvinceIsolation(t *testing.T) {
	store := newFakeRowStore()
	kv, err := OpenKV(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)

	province := "Luanda"
	b := New(kv, store, mapper.NewRegistry(), func() string { return province }, slog.Default())
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "branches",
		`{"state":{"branches":[{"id":"lu-1"}]},"version":1}`))

	province = "Benguela"
	data, err := b.Get(ctx, "branches")
	require.NoError(t, err)
	assert.Empty(t, data, "another province sees none of Luanda's data")

	province = "Luanda"
	data, err = b.Get(ctx, "branches")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestBackend_SettingsUpsert(t *testing.T) {
	store := newFakeRowStore()
	b := newTestBackend(t, store, "Luanda")
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "settings",
		`{"state":{"settings":{"companyName":"Primeira"}},"version":1}`))
	require.NoError(t, b.Set(ctx, "settings",
		`{"state":{"settings":{"companyName":"Segunda"}},"version":2}`))

	row, err := store.FetchByID(ctx, "settings", "Luanda", "company_settings")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "Segunda", row["company_name"])
}

func TestBackend_RemoveKeepsDurable(t *testing.T) {
	store := newFakeRowStore()
	b := newTestBackend(t, store, "Luanda")
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "branches",
		`{"state":{"branches":[{"id":"br-1"}]},"version":1}`))
	require.NoError(t, b.Remove(ctx, "branches"))

	// KV cleared, then served again from durable recovery.
	data, err := b.Get(ctx, "branches")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestBackend_CorruptEnvelopeStillStored(t *testing.T) {
	store := newFakeRowStore()
	b := newTestBackend(t, store, "Luanda")
	ctx := context.Background()

	// The raw write succeeds even when the mirror cannot parse it.
	require.NoError(t, b.Set(ctx, "branches", "{corrupto"))

	data, err := b.Get(ctx, "branches")
	require.NoError(t, err)
	assert.Equal(t, "{corrupto", data)

	rows, err := store.FetchAll(ctx, "branches", "Luanda")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
