package contracts

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/pacto/internal/clauses"
	"github.com/JaimeStill/pacto/internal/templates"
	"github.com/JaimeStill/pacto/pkg/storage"
)

// Domain errors for contract operations.
var (
	ErrNotFound        = errors.New("contract not found")
	ErrDuplicate       = errors.New("contract already exists")
	ErrInvalidContract = errors.New("invalid contract")
	ErrInvalidRUT      = errors.New("invalid rut")
	ErrInvalidDates    = errors.New("invalid contract dates")
	ErrReasonRequired  = errors.New("annex reason is required")
	ErrNoChanges       = errors.New("annex contains no changes")
	ErrStale           = errors.New("contract was modified concurrently")
)

// MapHTTPStatus maps contract domain errors to appropriate HTTP status codes.
// A missing template or clause named in a request body is a client error.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrStale):
		return http.StatusConflict
	case errors.Is(err, templates.ErrNotFound), errors.Is(err, clauses.ErrNotFound):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidContract),
		errors.Is(err, ErrInvalidRUT),
		errors.Is(err, ErrInvalidDates),
		errors.Is(err, ErrReasonRequired),
		errors.Is(err, ErrNoChanges):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
