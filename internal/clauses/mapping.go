package clauses

import (
	"net/url"

	"github.com/JaimeStill/pacto/pkg/query"
	"github.com/JaimeStill/pacto/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "clauses", "cl").
	Project("id", "ID").
	Project("title", "Title").
	Project("body", "Body").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field: "Title",
}

// Filters contains optional filtering criteria for clause queries.
// Title uses case-insensitive contains matching.
type Filters struct {
	Title *string `json:"title,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereContains("Title", f.Title)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if t := values.Get("title"); t != "" {
		f.Title = &t
	}

	return f
}

func scanClause(s repository.Scanner) (Clause, error) {
	var c Clause
	err := s.Scan(
		&c.ID,
		&c.Title,
		&c.Body,
		&c.CreatedAt,
	)
	return c, err
}
