package infrastructure_test

import (
	"testing"
	"time"

	"github.com/JaimeStill/pacto/internal/config"
	"github.com/JaimeStill/pacto/internal/infrastructure"
	"github.com/JaimeStill/pacto/pkg/cache"
	"github.com/JaimeStill/pacto/pkg/database"
	"github.com/JaimeStill/pacto/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=pactostore;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/pactostore;"

func validConfig() *config.Config {
	return &config.Config{
		Database: database.Config{
			Host:            "localhost",
			Port:            5432,
			Name:            "pacto",
			User:            "pacto",
			Password:        "pacto",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: "15m",
			ConnTimeout:     "5s",
		},
		Storage: storage.Config{
			ContainerName:    "contratos",
			ConnectionString: azuriteConnString,
		},
		Cache: cache.Config{
			Prefix: "pacto:",
			TTL:    "10m",
		},
		Version: "0.1.0",
	}
}

func TestNew(t *testing.T) {
	infra, err := infrastructure.New(validConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if infra.Lifecycle == nil {
		t.Error("Lifecycle is nil")
	}
	if infra.Logger == nil {
		t.Error("Logger is nil")
	}
	if infra.Database == nil {
		t.Error("Database is nil")
	}
	if infra.Storage == nil {
		t.Error("Storage is nil")
	}
	if infra.Cache == nil {
		t.Error("Cache is nil")
	}
	if infra.Cache.Enabled() {
		t.Error("Cache should be disabled without an address")
	}
}

func TestNewDatabaseConnection(t *testing.T) {
	infra, err := infrastructure.New(validConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	conn := infra.Database.Connection()
	if conn == nil {
		t.Fatal("Database.Connection() returned nil")
	}
	conn.Close()
}

func TestNewInvalidStorageConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.ConnectionString = "not-a-connection-string"

	_, err := infrastructure.New(cfg)
	if err == nil {
		t.Fatal("expected error for invalid storage connection string")
	}
}

func TestStartRegistersReadinessChecks(t *testing.T) {
	infra, err := infrastructure.New(validConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := infra.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() { infra.Lifecycle.Shutdown(5 * time.Second) })

	checks := infra.Lifecycle.Readiness()
	for _, name := range []string{"database", "storage"} {
		if _, ok := checks[name]; !ok {
			t.Errorf("readiness check %q not registered", name)
		}
	}
	if _, ok := checks["cache"]; ok {
		t.Error("disabled cache should not be a readiness check")
	}
}
