package contracts

import (
	"fmt"
	"strings"
	"time"

	"github.com/JaimeStill/pacto/drafting"
	"github.com/JaimeStill/pacto/pkg/rut"
)

var requiredKeys = []string{
	drafting.KeyNombreTrabajador,
	drafting.KeyRutTrabajador,
	drafting.KeyFechaContrato,
	drafting.KeyFechaIngresoTrabajador,
}

var rutKeys = []string{
	drafting.KeyRutTrabajador,
	drafting.KeyRutEmpresa,
	drafting.KeyRutRepresentante,
}

// FillDefaults returns a copy of fields where every blank key present in
// defaults takes the default value.
func FillDefaults(fields, defaults drafting.FieldSet) drafting.FieldSet {
	out := fields.Clone()
	for k, v := range defaults {
		if strings.TrimSpace(out.Get(k)) == "" {
			out[k] = v
		}
	}
	return out
}

// Validate checks the fields a stored contract depends on: required worker
// identity and dates, RUT check digits, and an entry date no earlier than
// the signing date. RUT values are rewritten in canonical form.
func Validate(fields drafting.FieldSet, loc *time.Location) error {
	for _, k := range requiredKeys {
		if strings.TrimSpace(fields.Get(k)) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidContract, k)
		}
	}

	for _, k := range rutKeys {
		v := fields.Get(k)
		if strings.TrimSpace(v) == "" {
			continue
		}
		canonical, err := rut.Parse(v)
		if err != nil {
			return fmt.Errorf("%w: %s %q", ErrInvalidRUT, k, v)
		}
		fields[k] = canonical
	}

	signed, ok := parseDay(fields.Get(drafting.KeyFechaContrato), loc)
	if !ok {
		return fmt.Errorf("%w: %s is not a date", ErrInvalidDates, drafting.KeyFechaContrato)
	}
	start, ok := parseDay(fields.Get(drafting.KeyFechaIngresoTrabajador), loc)
	if !ok {
		return fmt.Errorf("%w: %s is not a date", ErrInvalidDates, drafting.KeyFechaIngresoTrabajador)
	}
	if start.Before(signed) {
		return fmt.Errorf("%w: entry date precedes signing date", ErrInvalidDates)
	}

	return nil
}

func parseDay(s string, loc *time.Location) (time.Time, bool) {
	t, ok := drafting.ParseDate(s, loc)
	if !ok {
		return time.Time{}, false
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
}

func validateReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}
	return nil
}
