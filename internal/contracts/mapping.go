package contracts

import (
	"encoding/json"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/pacto/pkg/query"
	"github.com/JaimeStill/pacto/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "contracts", "c").
	Project("id", "ID").
	Project("template_id", "TemplateID").
	Project("worker_name", "WorkerName").
	Project("worker_rut", "WorkerRUT").
	Project("fields", "Fields").
	Project("clauses", "Clauses").
	Project("storage_key", "StorageKey").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt").
	Join("public", "templates", "t", "JOIN", "c.template_id = t.id").
	Project("name", "TemplateName")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

var annexProjection = query.
	NewProjectionMap("public", "annexes", "a").
	Project("id", "ID").
	Project("contract_id", "ContractID").
	Project("reason", "Reason").
	Project("changes", "Changes").
	Project("clauses", "Clauses").
	Project("storage_key", "StorageKey").
	Project("created_at", "CreatedAt")

var annexSort = query.SortField{
	Field: "CreatedAt",
}

// Filters contains optional filtering criteria for contract queries.
// WorkerName, WorkerRUT, and Position use case-insensitive contains matching;
// Position matches the cargoTrabajador field. CreatedFrom is inclusive and
// CreatedTo exclusive.
type Filters struct {
	WorkerName  *string    `json:"worker_name,omitempty"`
	WorkerRUT   *string    `json:"worker_rut,omitempty"`
	Position    *string    `json:"position,omitempty"`
	TemplateID  *uuid.UUID `json:"template_id,omitempty"`
	CreatedFrom *time.Time `json:"created_from,omitempty"`
	CreatedTo   *time.Time `json:"created_to,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("WorkerName", f.WorkerName).
		WhereContains("WorkerRUT", f.WorkerRUT).
		WhereJSONContains("Fields", "cargoTrabajador", f.Position).
		WhereEquals("TemplateID", f.TemplateID).
		WhereRange("CreatedAt", f.CreatedFrom, f.CreatedTo)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Dates accept RFC 3339 or YYYY-MM-DD; unparseable values are ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("worker_name"); n != "" {
		f.WorkerName = &n
	}

	if r := values.Get("worker_rut"); r != "" {
		f.WorkerRUT = &r
	}

	if p := values.Get("position"); p != "" {
		f.Position = &p
	}

	if tid := values.Get("template_id"); tid != "" {
		if v, err := uuid.Parse(tid); err == nil {
			f.TemplateID = &v
		}
	}

	f.CreatedFrom = parseTime(values.Get("created_from"))
	f.CreatedTo = parseTime(values.Get("created_to"))

	return f
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func scanContract(s repository.Scanner) (Contract, error) {
	var (
		c       Contract
		fields  []byte
		clauses []byte
	)
	err := s.Scan(
		&c.ID,
		&c.TemplateID,
		&c.WorkerName,
		&c.WorkerRUT,
		&fields,
		&clauses,
		&c.StorageKey,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.TemplateName,
	)
	if err != nil {
		return c, err
	}

	if err := json.Unmarshal(fields, &c.Fields); err != nil {
		return c, err
	}
	if err := json.Unmarshal(clauses, &c.Clauses); err != nil {
		return c, err
	}
	return c, nil
}

func scanAnnex(s repository.Scanner) (Annex, error) {
	var (
		a       Annex
		changes []byte
		clauses []byte
	)
	err := s.Scan(
		&a.ID,
		&a.ContractID,
		&a.Reason,
		&changes,
		&clauses,
		&a.StorageKey,
		&a.CreatedAt,
	)
	if err != nil {
		return a, err
	}

	if err := json.Unmarshal(changes, &a.Changes); err != nil {
		return a, err
	}
	if err := json.Unmarshal(clauses, &a.Clauses); err != nil {
		return a, err
	}
	return a, nil
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
