// Package contracts drafts employment contracts from templates and the
// clause catalog, stores the rendered text, and records annexes that amend
// a contract after signature.
package contracts

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/pacto/drafting"
)

// Contract is a drafted contract. Fields and Clauses hold the current
// values, including amendments recorded by annexes.
type Contract struct {
	ID           uuid.UUID         `json:"id"`
	TemplateID   uuid.UUID         `json:"template_id"`
	TemplateName string            `json:"template_name"`
	WorkerName   string            `json:"worker_name"`
	WorkerRUT    string            `json:"worker_rut"`
	Fields       drafting.FieldSet `json:"fields"`
	Clauses      []drafting.Clause `json:"clauses"`
	StorageKey   string            `json:"storage_key"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// Revision returns the contract's current fields and clauses.
func (c Contract) Revision() drafting.Revision {
	return drafting.Revision{
		Fields:  c.Fields,
		Clauses: c.Clauses,
	}
}

// Annex records one amendment to a contract. Clauses holds only the
// clauses the annex added.
type Annex struct {
	ID         uuid.UUID         `json:"id"`
	ContractID uuid.UUID         `json:"contract_id"`
	Reason     string            `json:"reason"`
	Changes    []drafting.Change `json:"changes"`
	Clauses    []drafting.Clause `json:"clauses"`
	StorageKey string            `json:"storage_key"`
	CreatedAt  time.Time         `json:"created_at"`
}

// CreateCommand carries the inputs for drafting a contract.
type CreateCommand struct {
	TemplateID uuid.UUID         `json:"template_id"`
	Fields     drafting.FieldSet `json:"fields"`
	ClauseIDs  []uuid.UUID       `json:"clause_ids"`
}

// AnnexCommand carries amended field values and clauses to add.
// Fields outside the amendable set are ignored. Date defaults to today.
type AnnexCommand struct {
	Fields    drafting.FieldSet `json:"fields"`
	ClauseIDs []uuid.UUID       `json:"clause_ids"`
	Reason    string            `json:"reason"`
	Date      string            `json:"date,omitempty"`
}

// Draft is a rendered contract that has not been stored.
type Draft struct {
	Text    string            `json:"text"`
	Fields  drafting.FieldSet `json:"fields"`
	Clauses []drafting.Clause `json:"clauses"`
}

// AnnexDraft is a composed annex together with the revision it would
// leave the contract in.
type AnnexDraft struct {
	Text      string             `json:"text"`
	ChangeSet drafting.ChangeSet `json:"change_set"`
	Revision  drafting.Revision  `json:"revision"`
}

// Settings holds the drafting inputs shared by every contract.
// Employer values fill fields a command leaves blank.
type Settings struct {
	Location *time.Location
	Employer drafting.FieldSet
}

func (s Settings) renderer() drafting.Renderer {
	return drafting.Renderer{Location: s.Location}
}

func (s Settings) now() time.Time {
	if s.Location == nil {
		return time.Now()
	}
	return time.Now().In(s.Location)
}

const textContentType = "text/plain; charset=utf-8"
