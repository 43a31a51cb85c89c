package cache_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/pacto/pkg/cache"
	"github.com/JaimeStill/pacto/pkg/lifecycle"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewWithoutAddressIsDisabled(t *testing.T) {
	c := cache.New(&cache.Config{}, discard())

	if c.Enabled() {
		t.Error("cache should be disabled without an address")
	}
	if !c.Ready() {
		t.Error("disabled cache should report ready")
	}

	ctx := context.Background()
	if err := c.Set(ctx, "templates:1", map[string]string{"name": "Indefinido"}); err != nil {
		t.Errorf("Set() error = %v", err)
	}

	var dest map[string]string
	if err := c.Get(ctx, "templates:1", &dest); !errors.Is(err, cache.ErrMiss) {
		t.Errorf("Get() error = %v, want ErrMiss", err)
	}
	if err := c.Delete(ctx, "templates:1"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestNewWithAddressIsEnabled(t *testing.T) {
	c := cache.New(&cache.Config{Address: "127.0.0.1:6379", TTL: "1m"}, discard())

	if !c.Enabled() {
		t.Error("cache should be enabled with an address")
	}
	if c.Ready() {
		t.Error("cache should not be ready before Start")
	}
}

func TestUnreachableCacheDisablesItself(t *testing.T) {
	c := cache.New(&cache.Config{Address: "127.0.0.1:1", TTL: "1m"}, discard())

	lc := lifecycle.New()
	if err := c.Start(lc); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	lc.WaitForStartup()
	t.Cleanup(func() { lc.Shutdown(5 * time.Second) })

	if !c.Ready() {
		t.Error("cache should settle as ready after a failed ping")
	}
	if c.Enabled() {
		t.Error("cache should be disabled after a failed ping")
	}

	ctx := context.Background()
	var dest map[string]string
	if err := c.Get(ctx, "templates:1", &dest); !errors.Is(err, cache.ErrMiss) {
		t.Errorf("Get() error = %v, want ErrMiss", err)
	}
	if err := c.Set(ctx, "templates:1", map[string]string{"name": "Indefinido"}); err != nil {
		t.Errorf("Set() error = %v", err)
	}
	if err := c.Delete(ctx, "templates:1"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestFinalizeDefaults(t *testing.T) {
	cfg := cache.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Prefix != "pacto:" {
		t.Errorf("prefix: got %s, want pacto:", cfg.Prefix)
	}
	if cfg.TTLDuration() != 10*time.Minute {
		t.Errorf("ttl: got %v, want 10m", cfg.TTLDuration())
	}
}

func TestFinalizeEnvOverrides(t *testing.T) {
	t.Setenv("TEST_CACHE_ADDR", "redis:6379")
	t.Setenv("TEST_CACHE_DB", "2")
	t.Setenv("TEST_CACHE_TTL", "30s")

	env := &cache.Env{
		Address: "TEST_CACHE_ADDR",
		DB:      "TEST_CACHE_DB",
		TTL:     "TEST_CACHE_TTL",
	}

	cfg := cache.Config{}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Address != "redis:6379" {
		t.Errorf("address: got %s, want redis:6379", cfg.Address)
	}
	if cfg.DB != 2 {
		t.Errorf("db: got %d, want 2", cfg.DB)
	}
	if cfg.TTLDuration() != 30*time.Second {
		t.Errorf("ttl: got %v, want 30s", cfg.TTLDuration())
	}
}

func TestFinalizeValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     cache.Config
		wantErr string
	}{
		{"invalid ttl", cache.Config{TTL: "soon"}, "invalid ttl"},
		{"negative ttl", cache.Config{TTL: "-1m"}, "ttl must be positive"},
		{"negative db", cache.Config{DB: -1}, "db must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base := cache.Config{Address: "localhost:6379", Prefix: "pacto:", TTL: "10m"}
	base.Merge(&cache.Config{Address: "redis:6379", TTL: "1h"})

	if base.Address != "redis:6379" {
		t.Errorf("address: got %s, want redis:6379", base.Address)
	}
	if base.Prefix != "pacto:" {
		t.Errorf("prefix should remain pacto:, got %s", base.Prefix)
	}
	if base.TTL != "1h" {
		t.Errorf("ttl: got %s, want 1h", base.TTL)
	}
}
