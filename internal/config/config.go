package config

import (
	"fmt"
	"os"
	"time"

	"github.com/JaimeStill/pacto/pkg/cache"
	"github.com/JaimeStill/pacto/pkg/database"
	"github.com/JaimeStill/pacto/pkg/storage"
	"github.com/pelletier/go-toml/v2"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvPactoEnv             = "PACTO_ENV"
	EnvPactoShutdownTimeout = "PACTO_SHUTDOWN_TIMEOUT"
	EnvPactoVersion         = "PACTO_VERSION"
)

var databaseEnv = &database.Env{
	URL:             "PACTO_DB_DSN",
	Host:            "PACTO_DB_HOST",
	Port:            "PACTO_DB_PORT",
	Name:            "PACTO_DB_NAME",
	User:            "PACTO_DB_USER",
	Password:        "PACTO_DB_PASSWORD",
	SSLMode:         "PACTO_DB_SSL_MODE",
	ApplicationName: "PACTO_DB_APPLICATION_NAME",
	MaxOpenConns:    "PACTO_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "PACTO_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "PACTO_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "PACTO_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "PACTO_STORAGE_CONTAINER_NAME",
	ConnectionString: "PACTO_STORAGE_CONNECTION_STRING",
	AccountURL:       "PACTO_STORAGE_ACCOUNT_URL",
	MaxListSize:      "PACTO_STORAGE_MAX_LIST_SIZE",
}

var cacheEnv = &cache.Env{
	Address:  "PACTO_CACHE_ADDRESS",
	Password: "PACTO_CACHE_PASSWORD",
	DB:       "PACTO_CACHE_DB",
	Prefix:   "PACTO_CACHE_PREFIX",
	TTL:      "PACTO_CACHE_TTL",
}

// Config is the root configuration for the pacto service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	Cache           cache.Config    `toml:"cache"`
	API             APIConfig       `toml:"api"`
	Drafting        DraftingConfig  `toml:"drafting"`
	Employer        EmployerConfig  `toml:"employer"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the PACTO_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvPactoEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	return duration(c.ShutdownTimeout)
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Cache.Merge(&overlay.Cache)
	c.API.Merge(&overlay.API)
	c.Drafting.Merge(&overlay.Drafting)
	c.Employer.Merge(&overlay.Employer)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Cache.Finalize(cacheEnv); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Drafting.Finalize(); err != nil {
		return fmt.Errorf("drafting: %w", err)
	}
	if err := c.Employer.Finalize(); err != nil {
		return fmt.Errorf("employer: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvPactoShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvPactoVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvPactoEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
