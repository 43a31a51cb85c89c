package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/pacto/drafting"
	"github.com/JaimeStill/pacto/pkg/rut"
)

const (
	EnvEmployerName                  = "PACTO_EMPLOYER_NAME"
	EnvEmployerRUT                   = "PACTO_EMPLOYER_RUT"
	EnvEmployerAddress               = "PACTO_EMPLOYER_ADDRESS"
	EnvEmployerRepresentative        = "PACTO_EMPLOYER_REPRESENTATIVE"
	EnvEmployerRepresentativeRUT     = "PACTO_EMPLOYER_REPRESENTATIVE_RUT"
	EnvEmployerRepresentativeAddress = "PACTO_EMPLOYER_REPRESENTATIVE_ADDRESS"
	EnvEmployerCity                  = "PACTO_EMPLOYER_CITY"
)

// EmployerConfig holds the employer identity applied to contracts that
// leave those fields blank.
type EmployerConfig struct {
	Name                  string `toml:"name"`
	RUT                   string `toml:"rut"`
	Address               string `toml:"address"`
	Representative        string `toml:"representative"`
	RepresentativeRUT     string `toml:"representative_rut"`
	RepresentativeAddress string `toml:"representative_address"`
	City                  string `toml:"city"`
}

// Defaults returns the configured values keyed by contract field.
// Unset values are omitted.
func (c *EmployerConfig) Defaults() drafting.FieldSet {
	out := drafting.FieldSet{}
	set := func(key, value string) {
		if value != "" {
			out[key] = value
		}
	}

	set(drafting.KeyNombreEmpresa, c.Name)
	set(drafting.KeyRutEmpresa, c.RUT)
	set(drafting.KeyDomicilioEmpresa, c.Address)
	set(drafting.KeyRepresentanteLegal, c.Representative)
	set(drafting.KeyRutRepresentante, c.RepresentativeRUT)
	set(drafting.KeyDomicilioRepresentante, c.RepresentativeAddress)
	set(drafting.KeyCiudadFirma, c.City)

	return out
}

// Finalize applies environment variable overrides and validation.
func (c *EmployerConfig) Finalize() error {
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *EmployerConfig) Merge(overlay *EmployerConfig) {
	if overlay.Name != "" {
		c.Name = overlay.Name
	}
	if overlay.RUT != "" {
		c.RUT = overlay.RUT
	}
	if overlay.Address != "" {
		c.Address = overlay.Address
	}
	if overlay.Representative != "" {
		c.Representative = overlay.Representative
	}
	if overlay.RepresentativeRUT != "" {
		c.RepresentativeRUT = overlay.RepresentativeRUT
	}
	if overlay.RepresentativeAddress != "" {
		c.RepresentativeAddress = overlay.RepresentativeAddress
	}
	if overlay.City != "" {
		c.City = overlay.City
	}
}

func (c *EmployerConfig) loadEnv() {
	if v := os.Getenv(EnvEmployerName); v != "" {
		c.Name = v
	}
	if v := os.Getenv(EnvEmployerRUT); v != "" {
		c.RUT = v
	}
	if v := os.Getenv(EnvEmployerAddress); v != "" {
		c.Address = v
	}
	if v := os.Getenv(EnvEmployerRepresentative); v != "" {
		c.Representative = v
	}
	if v := os.Getenv(EnvEmployerRepresentativeRUT); v != "" {
		c.RepresentativeRUT = v
	}
	if v := os.Getenv(EnvEmployerRepresentativeAddress); v != "" {
		c.RepresentativeAddress = v
	}
	if v := os.Getenv(EnvEmployerCity); v != "" {
		c.City = v
	}
}

func (c *EmployerConfig) validate() error {
	if c.RUT != "" {
		if _, err := rut.Parse(c.RUT); err != nil {
			return fmt.Errorf("invalid rut: %s", c.RUT)
		}
	}
	if c.RepresentativeRUT != "" {
		if _, err := rut.Parse(c.RepresentativeRUT); err != nil {
			return fmt.Errorf("invalid representative_rut: %s", c.RepresentativeRUT)
		}
	}
	return nil
}
