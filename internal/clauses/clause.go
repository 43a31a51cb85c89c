// Package clauses implements the reusable clause catalog.
// Catalog entries are copied into a contract when it is drafted, so later
// catalog edits never alter an issued contract.
package clauses

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/pacto/drafting"
)

// Clause is a catalog entry appended to contracts on request.
type Clause struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Draft converts the entry to the renderer's clause form.
func (c Clause) Draft() drafting.Clause {
	return drafting.Clause{
		ID:    c.ID.String(),
		Title: c.Title,
		Body:  c.Body,
	}
}

// Drafts converts a list of entries, preserving order.
func Drafts(list []Clause) []drafting.Clause {
	out := make([]drafting.Clause, len(list))
	for i, c := range list {
		out[i] = c.Draft()
	}
	return out
}

// CreateCommand carries the data needed to add a catalog entry.
type CreateCommand struct {
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body" yaml:"body"`
}

func (c CreateCommand) validate() error {
	if strings.TrimSpace(c.Title) == "" || strings.TrimSpace(c.Body) == "" {
		return ErrInvalidClause
	}
	return nil
}
