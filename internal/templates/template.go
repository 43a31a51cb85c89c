// Package templates implements the contract template domain.
// A template is a document body carrying placeholder tokens that the
// drafting renderer substitutes with contract field values.
package templates

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/pacto/drafting"
)

// Template is a stored contract body with placeholder tokens.
type Template struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Body        string    `json:"body"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to create a template.
type CreateCommand struct {
	Name        string  `json:"name"`
	Body        string  `json:"body"`
	Description *string `json:"description"`
}

// UpdateCommand carries the data needed to replace a template's content.
type UpdateCommand struct {
	Name        string  `json:"name"`
	Body        string  `json:"body"`
	Description *string `json:"description"`
}

// Variable describes a placeholder available to template authors.
type Variable struct {
	Key         string        `json:"key"`
	Label       string        `json:"label"`
	Kind        drafting.Kind `json:"kind"`
	Token       string        `json:"token"`
	EditorToken string        `json:"editor_token"`
}

// Variables returns the placeholder vocabulary in declaration order.
func Variables() []Variable {
	vars := make([]Variable, len(drafting.Vocabulary))
	for i, f := range drafting.Vocabulary {
		vars[i] = Variable{
			Key:         f.Key,
			Label:       f.Label,
			Kind:        f.Kind,
			Token:       f.Token(),
			EditorToken: f.EditorToken(),
		}
	}
	return vars
}

func validate(name, body string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(body) == "" {
		return ErrInvalidTemplate
	}
	return nil
}
