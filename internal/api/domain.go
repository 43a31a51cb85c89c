package api

import (
	"github.com/JaimeStill/pacto/internal/clauses"
	"github.com/JaimeStill/pacto/internal/contracts"
	"github.com/JaimeStill/pacto/internal/templates"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Templates templates.System
	Clauses   clauses.System
	Contracts contracts.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	templatesSystem := templates.New(
		runtime.Database.Connection(),
		runtime.Cache,
		runtime.Logger,
		runtime.Pagination,
	)

	clausesSystem := clauses.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	contractsSystem := contracts.New(
		runtime.Database.Connection(),
		runtime.Storage,
		templatesSystem,
		clausesSystem,
		runtime.Drafting,
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Templates: templatesSystem,
		Clauses:   clausesSystem,
		Contracts: contractsSystem,
	}
}
