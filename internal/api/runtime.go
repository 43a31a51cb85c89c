package api

import (
	"github.com/JaimeStill/pacto/internal/config"
	"github.com/JaimeStill/pacto/internal/contracts"
	"github.com/JaimeStill/pacto/internal/infrastructure"
	"github.com/JaimeStill/pacto/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Drafting   contracts.Settings
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
			Cache:     infra.Cache,
		},
		Pagination: cfg.API.Pagination,
		Drafting: contracts.Settings{
			Location: cfg.Drafting.Location(),
			Employer: cfg.Employer.Defaults(),
		},
	}
}
