package clauses

import (
	"errors"
	"net/http"
)

// Domain errors for clause operations.
var (
	ErrNotFound      = errors.New("clause not found")
	ErrDuplicate     = errors.New("clause title already exists")
	ErrInvalidClause = errors.New("clause title and body are required")
)

// MapHTTPStatus maps clause domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidClause) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
