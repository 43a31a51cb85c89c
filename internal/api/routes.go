package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/pacto/internal/config"
	"github.com/JaimeStill/pacto/pkg/openapi"
	"github.com/JaimeStill/pacto/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	storageHandler := newStorageHandler(
		runtime.Storage,
		runtime.Logger,
		cfg.Storage.MaxListSize,
	)

	groups := []routes.Group{
		domain.Templates.Handler().Routes(),
		domain.Clauses.Handler().Routes(),
		domain.Contracts.Handler().Routes(),
		storageHandler.routes(),
	}

	patterns := routes.Register(mux, groups...)

	spec := openapi.NewSpec(cfg.API.OpenAPI, cfg.Version)
	spec.AddServer(cfg.API.BasePath)
	spec.AddRoutes(groups...)

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(data))

	runtime.Logger.Debug("api routes registered", "base", cfg.API.BasePath, "count", len(patterns))
	return nil
}
