package clauses

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// DefaultCatalog returns the built-in clause entries.
func DefaultCatalog() ([]CreateCommand, error) {
	var entries []CreateCommand
	if err := yaml.Unmarshal(catalogYAML, &entries); err != nil {
		return nil, fmt.Errorf("parse clause catalog: %w", err)
	}

	for i, e := range entries {
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
	}

	return entries, nil
}
