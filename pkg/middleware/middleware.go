// Package middleware provides the HTTP middleware stack and the
// request-scoped handlers shared by modules.
package middleware

import "net/http"

// System manages an ordered stack of HTTP middleware.
// The first middleware added is the outermost at request time.
type System interface {
	Use(mw func(http.Handler) http.Handler)
	Apply(handler http.Handler) http.Handler
	Len() int
}

type stack struct {
	layers []func(http.Handler) http.Handler
}

// New creates a middleware System seeded with the given layers.
func New(layers ...func(http.Handler) http.Handler) System {
	return &stack{layers: layers}
}

func (s *stack) Use(fn func(http.Handler) http.Handler) {
	s.layers = append(s.layers, fn)
}

func (s *stack) Apply(handler http.Handler) http.Handler {
	for i := len(s.layers) - 1; i >= 0; i-- {
		handler = s.layers[i](handler)
	}
	return handler
}

func (s *stack) Len() int {
	return len(s.layers)
}
