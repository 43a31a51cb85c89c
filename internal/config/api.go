package config

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/JaimeStill/pacto/pkg/middleware"
	"github.com/JaimeStill/pacto/pkg/openapi"
	"github.com/JaimeStill/pacto/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "PACTO_CORS_ENABLED",
	Origins:          "PACTO_CORS_ORIGINS",
	AllowedMethods:   "PACTO_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "PACTO_CORS_ALLOWED_HEADERS",
	ExposedHeaders:   "PACTO_CORS_EXPOSED_HEADERS",
	AllowCredentials: "PACTO_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "PACTO_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "PACTO_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "PACTO_PAGINATION_MAX_PAGE_SIZE",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "PACTO_OPENAPI_TITLE",
	Description: "PACTO_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, request limits, CORS, pagination, and API
// document settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize string                `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
	Pagination  pagination.Config     `toml:"pagination"`
	OpenAPI     openapi.Config        `toml:"openapi"`
}

const defaultMaxBodySize = "1MiB"

// MaxBodySizeBytes returns MaxBodySize in bytes. Units follow go-humanize:
// "MB" is decimal, "MiB" is binary.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	size, err := humanize.ParseBytes(c.MaxBodySize)
	if err != nil {
		return 1 << 20
	}
	return int64(size)
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if _, err := humanize.ParseBytes(c.MaxBodySize); err != nil {
		return fmt.Errorf("invalid max_body_size: %w", err)
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = defaultMaxBodySize
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("PACTO_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("PACTO_API_MAX_BODY_SIZE"); v != "" {
		c.MaxBodySize = v
	}
}
