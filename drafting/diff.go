package drafting

// Change records one amended field. Old and New are display-formatted.
type Change struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// Revision is a field set together with the clauses attached to it.
type Revision struct {
	Fields  FieldSet `json:"fields"`
	Clauses []Clause `json:"clauses"`
}

// ChangeSet is the result of comparing two revisions. Unchanged is set
// explicitly when no field differs and no clause was added.
type ChangeSet struct {
	Changes      []Change `json:"changes"`
	AddedClauses []Clause `json:"added_clauses"`
	Unchanged    bool     `json:"unchanged"`
}

// DiffFields compares original and amended over keys, in key order.
// Keys listed in Amendable as numeric compare by parsed value and display as
// currency; every other key compares and displays verbatim.
func DiffFields(original, amended FieldSet, keys []string) []Change {
	changes := make([]Change, 0)

	for _, key := range keys {
		af, known := LookupAmendable(key)
		label := key
		if known {
			label = af.Label
		}

		if known && af.Numeric {
			oldV := ParseAmount(original.Get(key))
			newV := ParseAmount(amended.Get(key))
			if oldV == newV {
				continue
			}
			changes = append(changes, Change{
				Key:   key,
				Label: label,
				Old:   FormatCurrency(oldV),
				New:   FormatCurrency(newV),
			})
			continue
		}

		oldS, newS := original.Get(key), amended.Get(key)
		if oldS == newS {
			continue
		}
		changes = append(changes, Change{
			Key:   key,
			Label: label,
			Old:   oldS,
			New:   newS,
		})
	}

	return changes
}

// Diff compares two revisions. Clauses whose ID is absent from the original
// are reported as additions, in amended order.
func Diff(original, amended Revision, keys []string) ChangeSet {
	changes := DiffFields(original.Fields, amended.Fields, keys)

	seen := make(map[string]struct{}, len(original.Clauses))
	for _, c := range original.Clauses {
		seen[c.ID] = struct{}{}
	}

	added := make([]Clause, 0)
	for _, c := range amended.Clauses {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		added = append(added, c)
	}

	return ChangeSet{
		Changes:      changes,
		AddedClauses: added,
		Unchanged:    len(changes) == 0 && len(added) == 0,
	}
}
