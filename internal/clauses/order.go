package clauses

import (
	"fmt"

	"github.com/google/uuid"
)

// Unique returns ids with repeats removed, keeping first occurrences.
func Unique(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Order arranges found to follow ids. Every id must be present in found.
func Order(ids []uuid.UUID, found []Clause) ([]Clause, error) {
	byID := make(map[uuid.UUID]Clause, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}

	out := make([]Clause, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		out = append(out, c)
	}
	return out, nil
}
