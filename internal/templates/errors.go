package templates

import (
	"errors"
	"net/http"
)

// Domain errors for template operations.
var (
	ErrNotFound        = errors.New("template not found")
	ErrDuplicate       = errors.New("template name already exists")
	ErrInvalidTemplate = errors.New("template name and body are required")
	ErrInUse           = errors.New("template is referenced by existing contracts")
)

// MapHTTPStatus maps template domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) || errors.Is(err, ErrInUse) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidTemplate) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
