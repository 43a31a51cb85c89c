// Package cache provides a JSON value cache backed by Redis. When no address
// is configured, or Redis does not answer the startup ping, lookups report
// a miss and writes are dropped.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JaimeStill/pacto/pkg/lifecycle"
)

// ErrMiss indicates the key is not cached.
var ErrMiss = errors.New("cache miss")

// System caches JSON-encoded values under prefixed keys.
type System interface {
	// Start registers connection and shutdown hooks with the lifecycle coordinator.
	Start(lc *lifecycle.Coordinator) error
	// Enabled reports whether a backing store is configured and reachable.
	Enabled() bool
	// Ready reports whether startup has settled, either connected or disabled.
	Ready() bool
	// Get decodes the value stored at key into dest. Returns ErrMiss when absent.
	Get(ctx context.Context, key string, dest any) error
	// Set stores value at key for the configured TTL.
	Set(ctx context.Context, key string, value any) error
	// Delete removes keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}

// New creates a Redis-backed cache, or a no-op cache when cfg.Address is empty.
func New(cfg *Config, logger *slog.Logger) System {
	logger = logger.With("system", "cache")

	if cfg.Address == "" {
		logger.Warn("cache address not configured, caching disabled")
		return noop{}
	}

	return &redisCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		prefix: cfg.Prefix,
		ttl:    cfg.TTLDuration(),
		logger: logger,
	}
}

type redisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
	ready  atomic.Bool
	off    atomic.Bool
}

func (c *redisCache) Start(lc *lifecycle.Coordinator) error {
	c.logger.Info("starting cache connection")

	lc.OnStartup(func() {
		if err := c.client.Ping(lc.Context()).Err(); err != nil {
			c.logger.Warn("cache unreachable, caching disabled", "error", err)
			c.off.Store(true)
			c.ready.Store(true)
			return
		}

		c.ready.Store(true)
		c.logger.Info("cache connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		c.ready.Store(false)

		if err := c.client.Close(); err != nil {
			c.logger.Error("cache close failed", "error", err)
			return
		}

		c.logger.Info("cache connection closed")
	})

	return nil
}

func (c *redisCache) Enabled() bool { return !c.off.Load() }

func (c *redisCache) Ready() bool { return c.ready.Load() }

func (c *redisCache) Get(ctx context.Context, key string, dest any) error {
	if c.off.Load() {
		return ErrMiss
	}

	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrMiss
		}
		return fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("cache decode %s: %w", key, err)
	}

	return nil
}

func (c *redisCache) Set(ctx context.Context, key string, value any) error {
	if c.off.Load() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}

	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}

	return nil
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 || c.off.Load() {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = c.prefix + k
	}

	if err := c.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}

	return nil
}

type noop struct{}

func (noop) Start(*lifecycle.Coordinator) error { return nil }
func (noop) Enabled() bool { return false }
func (noop) Ready() bool { return true }
func (noop) Get(context.Context, string, any) error { return ErrMiss }
func (noop) Set(context.Context, string, any) error { return nil }
func (noop) Delete(context.Context, ...string) error { return nil }
