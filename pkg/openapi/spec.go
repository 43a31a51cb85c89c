// Package openapi generates an OpenAPI 3.1 document from registered route
// groups and serves it as JSON.
package openapi

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"github.com/JaimeStill/pacto/pkg/routes"
)

var pathParam = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)(\.\.\.)?\}`)

// Spec represents an OpenAPI 3.1 specification document.
type Spec struct {
	OpenAPI    string               `json:"openapi"`
	Info       *Info                `json:"info"`
	Servers    []*Server            `json:"servers,omitempty"`
	Paths      map[string]*PathItem `json:"paths"`
	Components *Components          `json:"components,omitempty"`
}

// NewSpec creates a Spec from the config with default components.
func NewSpec(cfg Config, version string) *Spec {
	return &Spec{
		OpenAPI: "3.1.0",
		Info: &Info{
			Title:       cfg.Title,
			Version:     version,
			Description: cfg.Description,
		},
		Components: NewComponents(),
		Paths:      make(map[string]*PathItem),
	}
}

// AddServer appends a server URL to the spec.
func (s *Spec) AddServer(url string) {
	s.Servers = append(s.Servers, &Server{URL: url})
}

// AddOperation sets the operation for method on path.
// Methods outside GET, POST, PUT, and DELETE are ignored.
func (s *Spec) AddOperation(method, path string, op *Operation) {
	item, ok := s.Paths[path]
	if !ok {
		item = &PathItem{}
		s.Paths[path] = item
	}

	switch method {
	case http.MethodGet:
		item.Get = op
	case http.MethodPost:
		item.Post = op
	case http.MethodPut:
		item.Put = op
	case http.MethodDelete:
		item.Delete = op
	}
}

// AddRoutes documents every route in groups. Path parameters named id or
// ending in _id are typed as UUIDs; wildcard segments become plain strings.
func (s *Spec) AddRoutes(groups ...routes.Group) {
	routes.Walk(func(g routes.Group, path string, r routes.Route) {
		op := &Operation{
			Summary:   r.Summary,
			Responses: responses(r.Method),
		}
		if g.Tag != "" {
			op.Tags = []string{g.Tag}
		}

		for _, m := range pathParam.FindAllStringSubmatch(path, -1) {
			format := ""
			if m[2] == "" && (m[1] == "id" || strings.HasSuffix(m[1], "_id")) {
				format = "uuid"
			}
			op.Parameters = append(op.Parameters, PathParam(m[1], format))
		}

		if r.Method == http.MethodPost || r.Method == http.MethodPut {
			op.RequestBody = &RequestBody{
				Required: true,
				Content: map[string]*MediaType{
					"application/json": {Schema: &Schema{Type: "object"}},
				},
			}
		}

		if len(op.Parameters) > 0 {
			op.Responses[http.StatusNotFound] = ResponseRef("NotFound")
		}

		s.AddOperation(r.Method, pathParam.ReplaceAllString(path, "{$1}"), op)
	}, groups...)
}

func responses(method string) map[int]*Response {
	out := map[int]*Response{
		http.StatusInternalServerError: ResponseRef("Internal"),
	}

	switch method {
	case http.MethodDelete:
		out[http.StatusNoContent] = &Response{Description: "Deleted"}
	case http.MethodPost, http.MethodPut:
		out[http.StatusOK] = &Response{Description: "Success"}
		out[http.StatusBadRequest] = ResponseRef("BadRequest")
		out[http.StatusConflict] = ResponseRef("Conflict")
	default:
		out[http.StatusOK] = &Response{Description: "Success"}
	}
	return out
}

// MarshalJSON serializes the spec to indented JSON bytes.
func MarshalJSON(spec *Spec) ([]byte, error) {
	return json.MarshalIndent(spec, "", "  ")
}

// ServeSpec returns a handler that serves pre-serialized JSON spec bytes.
func ServeSpec(specBytes []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(specBytes)
	}
}
