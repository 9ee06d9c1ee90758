// Package reconcile computes the full replace-by-diff both backends apply on
// writes: the incoming snapshot is the complete desired row set, and the
// plan brings the stored set in line with it.
package reconcile

import "folharh/internal/storage"

// Plan is the set of operations that makes the stored rows equal to the
// incoming rows. Updates are unconditional (no field-level dirty checking),
// so applying the same plan twice is a no-op the second time. There is no
// optimistic-concurrency check: a row the peer changed between fetch and
// apply is overwritten or deleted last-writer-wins.
type Plan struct {
	Inserts []storage.Row
	Updates []storage.Row
	Deletes []string
}

// Empty reports whether the plan carries no operations.
func (p Plan) Empty() bool {
	return len(p.Inserts) == 0 && len(p.Updates) == 0 && len(p.Deletes) == 0
}

// Diff builds the plan from the currently stored rows and the incoming full
// set. Rows without an id are skipped; ids are matched as strings.
func Diff(existing, incoming []storage.Row) Plan {
	existingIDs := make(map[string]bool, len(existing))
	for _, row := range existing {
		if id := rowID(row); id != "" {
			existingIDs[id] = true
		}
	}

	var plan Plan
	incomingIDs := make(map[string]bool, len(incoming))
	for _, row := range incoming {
		id := rowID(row)
		if id == "" {
			continue
		}
		incomingIDs[id] = true
		if existingIDs[id] {
			plan.Updates = append(plan.Updates, row)
		} else {
			plan.Inserts = append(plan.Inserts, row)
		}
	}

	for _, row := range existing {
		if id := rowID(row); id != "" && !incomingIDs[id] {
			plan.Deletes = append(plan.Deletes, id)
		}
	}

	return plan
}

func rowID(row storage.Row) string {
	switch id := row["id"].(type) {
	case string:
		return id
	default:
		return ""
	}
}
