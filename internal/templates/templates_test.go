package templates_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/JaimeStill/pacto/drafting"
	"github.com/JaimeStill/pacto/internal/templates"
	"github.com/JaimeStill/pacto/pkg/query"
)

func ptr[T any](v T) *T { return &v }

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", templates.ErrNotFound, http.StatusNotFound},
		{"duplicate", templates.ErrDuplicate, http.StatusConflict},
		{"in use", templates.ErrInUse, http.StatusConflict},
		{"invalid template", templates.ErrInvalidTemplate, http.StatusBadRequest},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("find failed: %w", templates.ErrNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := templates.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestVariables(t *testing.T) {
	vars := templates.Variables()

	if len(vars) != len(drafting.Vocabulary) {
		t.Fatalf("len(Variables()) = %d, want %d", len(vars), len(drafting.Vocabulary))
	}

	for i, v := range vars {
		f := drafting.Vocabulary[i]
		if v.Key != f.Key {
			t.Errorf("vars[%d].Key = %q, want %q", i, v.Key, f.Key)
		}
		if v.Token != "{"+f.Key+"}" {
			t.Errorf("vars[%d].Token = %q", i, v.Token)
		}
		if v.EditorToken != "{@"+f.Key+"}" {
			t.Errorf("vars[%d].EditorToken = %q", i, v.EditorToken)
		}
	}
}

func TestFiltersFromQuery(t *testing.T) {
	t.Run("empty query", func(t *testing.T) {
		f := templates.FiltersFromQuery(url.Values{})
		if f.Name != nil {
			t.Errorf("Name = %v, want nil", *f.Name)
		}
	})

	t.Run("name", func(t *testing.T) {
		f := templates.FiltersFromQuery(url.Values{"name": {"plazo fijo"}})
		if f.Name == nil || *f.Name != "plazo fijo" {
			t.Errorf("Name = %v, want plazo fijo", f.Name)
		}
	})
}

func TestFiltersApply(t *testing.T) {
	projection := query.
		NewProjectionMap("public", "templates", "t").
		Project("id", "ID").
		Project("name", "Name")

	t.Run("no filters produces no WHERE clause", func(t *testing.T) {
		b := query.NewBuilder(projection)
		templates.Filters{}.Apply(b)
		sql, args := b.Build()

		wantSQL := "SELECT t.id, t.name FROM public.templates t"
		if sql != wantSQL {
			t.Errorf("sql = %q, want %q", sql, wantSQL)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}
	})

	t.Run("name contains filter", func(t *testing.T) {
		b := query.NewBuilder(projection)
		templates.Filters{Name: ptr("indefinido")}.Apply(b)
		_, args := b.Build()

		if len(args) != 1 || args[0] != "%indefinido%" {
			t.Errorf("args = %v, want [%%indefinido%%]", args)
		}
	})
}
