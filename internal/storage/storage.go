// Package storage defines the contract shared by every persistence backend:
// the record and row shapes, the snapshot envelope exchanged with the
// application layer, and the adapter interface that collection stores call.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Record is an application-level entity as decoded from the snapshot
// envelope: nested objects and arrays are allowed, field names follow the
// application's camelCase convention. Every persisted record carries a
// string "id".
type Record = map[string]any

// Row is the flat, scalar-only representation of a Record: snake_case
// columns, booleans as 0/1 integers, nested values serialized to JSON text,
// absent optional fields as nil.
type Row = map[string]any

// Envelope is the unit read and written through the router. State is kept
// as raw JSON per field so that auxiliary fields a collection carries next
// to its record array (currentUser, isAuthenticated, ...) survive untouched.
type Envelope struct {
	State   map[string]json.RawMessage `json:"state"`
	Version int                        `json:"version"`
}

// ParseEnvelope decodes a serialized snapshot envelope.
func ParseEnvelope(data string) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal([]byte(data), &env); err != nil {
		return nil, fmt.Errorf("envelope inválido: %w", err)
	}
	return &env, nil
}

// Encode serializes the envelope back to its transport form.
func (e *Envelope) Encode() (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("erro ao serializar envelope: %w", err)
	}
	return string(data), nil
}

// Adapter is the contract every collection's persistence layer programs
// against. Get returns the serialized envelope, or "" when the backend has
// no data for the collection (an empty result, not an error).
type Adapter interface {
	Get(ctx context.Context, collection string) (string, error)
	Set(ctx context.Context, collection string, data string) error
	Remove(ctx context.Context, collection string) error
}

// RowStore is the four primitive table operations a durable store exposes.
// FetchByID returns (nil, nil) when the row does not exist. All rows are
// scoped to the given province; stores add and filter the province column
// themselves so callers never see it.
type RowStore interface {
	FetchAll(ctx context.Context, table, province string) ([]Row, error)
	FetchByID(ctx context.Context, table, province, id string) (Row, error)
	Insert(ctx context.Context, table, province string, row Row) error
	Update(ctx context.Context, table, province, id string, row Row) error
	Delete(ctx context.Context, table, province, id string) error
	Close() error
}

// ErrOffline marks a write that was blocked because the configured server
// is known to be unreachable. Callers distinguish it from a failed write
// via errors.Is.
var ErrOffline = errors.New("sem ligação ao servidor (server unreachable)")

// ErrUnknownTable is returned by row stores for tables outside the
// collection registry.
var ErrUnknownTable = errors.New("tabela desconhecida (unknown table)")
