package config

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata"
)

const EnvDraftingTimeZone = "PACTO_DRAFTING_TIME_ZONE"

// DraftingConfig holds document rendering settings.
type DraftingConfig struct {
	TimeZone string `toml:"time_zone"`

	location *time.Location
}

// Location returns the loaded time zone used to render instant-valued dates.
func (c *DraftingConfig) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *DraftingConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *DraftingConfig) Merge(overlay *DraftingConfig) {
	if overlay.TimeZone != "" {
		c.TimeZone = overlay.TimeZone
	}
}

func (c *DraftingConfig) loadDefaults() {
	if c.TimeZone == "" {
		c.TimeZone = "America/Santiago"
	}
}

func (c *DraftingConfig) loadEnv() {
	if v := os.Getenv(EnvDraftingTimeZone); v != "" {
		c.TimeZone = v
	}
}

func (c *DraftingConfig) validate() error {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return fmt.Errorf("invalid time_zone: %w", err)
	}
	c.location = loc
	return nil
}
