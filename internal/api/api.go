// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/pacto/internal/config"
	"github.com/JaimeStill/pacto/internal/infrastructure"
	"github.com/JaimeStill/pacto/pkg/middleware"
	"github.com/JaimeStill/pacto/pkg/module"
)

// API is the mounted module together with the domain systems behind it.
type API struct {
	Module *module.Module
	Domain *Domain
}

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*API, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg, runtime); err != nil {
		return nil, err
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.Recover(runtime.Infrastructure.Logger))
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Infrastructure.Logger))
	m.Use(middleware.MaxBytes(cfg.API.MaxBodySizeBytes()))

	return &API{
		Module: m,
		Domain: domain,
	}, nil
}
