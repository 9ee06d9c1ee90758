package storage

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Part binds one state field to the record array it carries. Collections
// whose table is split by a discriminator declare one Part per record kind.
type Part struct {
	StateKey      string
	Discriminator string
}

// Spec describes how one collection's state maps onto its record array and
// durable table. It replaces shape-by-name branching inside the backends:
// every special case (single-record settings, split payroll table, synthetic
// holiday ids, auxiliary user fields) is declared here once.
type Spec struct {
	Collection string
	Table      string
	Parts      []Part

	// DiscriminatorField names the record field that selects a Part when
	// the collection has more than one.
	DiscriminatorField string

	// SingleRecord collections keep one object (not an array) in their
	// state field and upsert it under FixedID.
	SingleRecord bool
	FixedID      string

	// SynthID derives an id for collections without a natural one. Applied
	// during extraction before rows are reconciled.
	SynthID func(Record) string

	// StateExtras are auxiliary state fields restored with safe defaults
	// when an envelope is assembled from rows (recovery or remote reads).
	StateExtras map[string]any
}

// Specs is the collection registry, keyed by collection name.
var Specs = buildSpecs()

// SpecFor returns the spec for a collection, if registered.
func SpecFor(collection string) (*Spec, bool) {
	s, ok := Specs[collection]
	return s, ok
}

// SpecForTable resolves a durable table name back to its spec. Used by the
// server API to validate incoming table names.
func SpecForTable(table string) (*Spec, bool) {
	for _, s := range Specs {
		if s.Table == table {
			return s, true
		}
	}
	return nil, false
}

func buildSpecs() map[string]*Spec {
	specs := []*Spec{
		{
			Collection: "employees",
			Table:      "employees",
			Parts:      []Part{{StateKey: "employees"}},
		},
		{
			Collection: "branches",
			Table:      "branches",
			Parts:      []Part{{StateKey: "branches"}},
		},
		{
			Collection: "users",
			Table:      "users",
			Parts:      []Part{{StateKey: "users"}},
			StateExtras: map[string]any{
				"currentUser":     nil,
				"isAuthenticated": false,
			},
		},
		{
			Collection: "deductions",
			Table:      "deductions",
			Parts:      []Part{{StateKey: "deductions"}},
		},
		{
			Collection: "absences",
			Table:      "absences",
			Parts:      []Part{{StateKey: "absences"}},
		},
		{
			// Vacation usage per employee per year; no natural id, so one
			// is synthesized from employeeId+year before reconciliation.
			Collection: "holidays",
			Table:      "holidays",
			Parts:      []Part{{StateKey: "holidays"}},
			SynthID: func(rec Record) string {
				return scalarString(rec["employeeId"]) + scalarString(rec["year"])
			},
		},
		{
			// One table, two record kinds told apart by recordType.
			Collection:         "payroll_records",
			Table:              "payroll_records",
			DiscriminatorField: "recordType",
			Parts: []Part{
				{StateKey: "periods", Discriminator: "period"},
				{StateKey: "entries", Discriminator: "entry"},
			},
		},
		{
			Collection:   "settings",
			Table:        "settings",
			Parts:        []Part{{StateKey: "settings"}},
			SingleRecord: true,
			FixedID:      "company_settings",
		},
	}

	byName := make(map[string]*Spec, len(specs))
	for _, s := range specs {
		byName[s.Collection] = s
	}
	return byName
}

// ExtractRecords pulls the full record set out of an envelope's state:
// every Part's array, discriminator stamped, missing ids synthesized.
func (s *Spec) ExtractRecords(env *Envelope) ([]Record, error) {
	var records []Record
	for _, part := range s.Parts {
		raw, ok := env.State[part.StateKey]
		if !ok || len(raw) == 0 || string(raw) == "null" {
			continue
		}

		var recs []Record
		if s.SingleRecord {
			var rec Record
			if err := json.Unmarshal(raw, &rec); err != nil {
				return nil, fmt.Errorf("estado de %s inválido: %w", s.Collection, err)
			}
			if rec != nil {
				recs = []Record{rec}
			}
		} else if err := json.Unmarshal(raw, &recs); err != nil {
			return nil, fmt.Errorf("estado de %s inválido: %w", s.Collection, err)
		}

		for _, rec := range recs {
			if rec == nil {
				continue
			}
			if part.Discriminator != "" {
				rec[s.DiscriminatorField] = part.Discriminator
			}
			if s.SingleRecord && s.FixedID != "" {
				rec["id"] = s.FixedID
			} else if s.SynthID != nil && scalarString(rec["id"]) == "" {
				rec["id"] = s.SynthID(rec)
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

// AssembleEnvelope builds a fresh envelope (version 0) from a record set,
// grouping records back into their Parts and restoring auxiliary state
// fields with their defaults.
func (s *Spec) AssembleEnvelope(records []Record) (*Envelope, error) {
	state := make(map[string]json.RawMessage, len(s.Parts)+len(s.StateExtras))

	for _, part := range s.Parts {
		var subset []Record
		for _, rec := range records {
			if part.Discriminator == "" || scalarString(rec[s.DiscriminatorField]) == part.Discriminator {
				subset = append(subset, rec)
			}
		}

		var (
			raw []byte
			err error
		)
		if s.SingleRecord {
			if len(subset) == 0 {
				raw = []byte("null")
			} else {
				raw, err = json.Marshal(subset[0])
			}
		} else {
			if subset == nil {
				subset = []Record{}
			}
			raw, err = json.Marshal(subset)
		}
		if err != nil {
			return nil, fmt.Errorf("erro ao montar estado de %s: %w", s.Collection, err)
		}
		state[part.StateKey] = raw
	}

	for key, val := range s.StateExtras {
		raw, err := json.Marshal(val)
		if err != nil {
			return nil, fmt.Errorf("erro ao montar estado de %s: %w", s.Collection, err)
		}
		state[key] = raw
	}

	return &Envelope{State: state, Version: 0}, nil
}

// scalarString renders a scalar JSON value as a string, printing numeric
// values without a decimal point when they are whole.
func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
