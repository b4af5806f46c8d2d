// Package reconcile merges imported log entries into an existing set.
package reconcile

import (
	"sort"

	"liftlog/internal/domain"
)

// Merge combines incoming entries into the existing set keyed by identifier.
// An incoming entry sharing an ID with an existing one replaces it wholesale;
// there is no field-level merge or timestamp comparison. Incoming entries
// failing the model invariants are excluded first. The result is sorted by
// date descending, which is a plain string sort since dates are zero-padded
// YYYY-MM-DD; order among equal dates is not part of the contract.
func Merge(existing, incoming []domain.LogEntry) []domain.LogEntry {
	byID := make(map[string]domain.LogEntry, len(existing)+len(incoming))
	order := make([]string, 0, len(existing)+len(incoming))

	add := func(e domain.LogEntry) {
		if _, seen := byID[e.ID]; !seen {
			order = append(order, e.ID)
		}
		byID[e.ID] = e
	}

	for _, e := range existing {
		add(e)
	}
	for _, e := range incoming {
		if !e.Valid() {
			continue
		}
		add(e)
	}

	merged := make([]domain.LogEntry, 0, len(order))
	for _, id := range order {
		merged = append(merged, byID[id])
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date > merged[j].Date
	})
	return merged
}
