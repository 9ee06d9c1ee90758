// Package mapper holds the per-collection transforms between application
// records (nested, camelCase) and storage rows (flat, snake_case, booleans
// as 0/1, nested values as JSON text). Mappers are pure and stateless; each
// declared field round-trips exactly, undeclared fields are dropped.
package mapper

import (
	"encoding/json"
	"strconv"

	"folharh/internal/storage"
)

// Mapper converts one collection's records to rows and back.
type Mapper struct {
	ToRow   func(storage.Record) storage.Row
	FromRow func(storage.Row) storage.Record
}

// Registry resolves the mapper for a collection. Unknown collections get an
// identity mapper so auxiliary tables never hard-fail.
type Registry struct {
	mappers map[string]Mapper
}

// NewRegistry builds the registry with every known collection registered.
func NewRegistry() *Registry {
	return &Registry{
		mappers: map[string]Mapper{
			"employees":       {ToRow: employeeToRow, FromRow: employeeFromRow},
			"branches":        {ToRow: branchToRow, FromRow: branchFromRow},
			"users":           {ToRow: userToRow, FromRow: userFromRow},
			"deductions":      {ToRow: deductionToRow, FromRow: deductionFromRow},
			"absences":        {ToRow: absenceToRow, FromRow: absenceFromRow},
			"holidays":        {ToRow: holidayToRow, FromRow: holidayFromRow},
			"payroll_records": {ToRow: payrollToRow, FromRow: payrollFromRow},
			"settings":        {ToRow: settingsToRow, FromRow: settingsFromRow},
		},
	}
}

// For returns the collection's mapper, or the identity mapper.
func (r *Registry) For(collection string) Mapper {
	if m, ok := r.mappers[collection]; ok {
		return m
	}
	return Mapper{ToRow: identity, FromRow: identity}
}

// Known reports whether the collection has a registered mapper.
func (r *Registry) Known(collection string) bool {
	_, ok := r.mappers[collection]
	return ok
}

func identity(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// ---- field conversion helpers ----

// text keeps a string field, nil when absent.
func text(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return t
	case []byte:
		return string(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return nil
	}
}

// number normalizes any numeric representation to float64, nil when absent.
// Durable stores hand integers back as int64; the application side always
// sees JSON numbers.
func number(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		return t
	case int64:
		return float64(t)
	case int:
		return float64(t)
	case []byte:
		if f, err := strconv.ParseFloat(string(t), 64); err == nil {
			return f
		}
		return nil
	default:
		return nil
	}
}

// boolCol stores a flag as 0/1, applying the declared default when the
// field is absent so rows never carry ambiguous optionality.
func boolCol(v any, def bool) int64 {
	b := def
	switch t := v.(type) {
	case bool:
		b = t
	case float64:
		b = t != 0
	case int64:
		b = t != 0
	}
	if b {
		return 1
	}
	return 0
}

// boolField restores a 0/1 column to a boolean, with the same default.
func boolField(v any, def bool) bool {
	switch t := v.(type) {
	case nil:
		return def
	case bool:
		return t
	case float64:
		return t != 0
	case int64:
		return t != 0
	default:
		return def
	}
}

// jsonCol serializes a nested value to text, nil when absent.
func jsonCol(v any) any {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return string(data)
}

// jsonField parses a JSON text column back into its nested value.
func jsonField(v any) any {
	var data []byte
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		data = []byte(t)
	case []byte:
		data = t
	default:
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}
