package templates_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/JaimeStill/pacto/internal/templates"
	"github.com/JaimeStill/pacto/pkg/cache"
	"github.com/JaimeStill/pacto/pkg/lifecycle"
	"github.com/JaimeStill/pacto/pkg/pagination"
)

type fakeCache struct {
	getFn   func(key string, dest any) error
	set     []string
	deleted []string
}

func (c *fakeCache) Start(*lifecycle.Coordinator) error { return nil }
func (c *fakeCache) Enabled() bool                      { return true }
func (c *fakeCache) Ready() bool                        { return true }

func (c *fakeCache) Get(_ context.Context, key string, dest any) error {
	if c.getFn == nil {
		return cache.ErrMiss
	}
	return c.getFn(key, dest)
}

func (c *fakeCache) Set(_ context.Context, key string, _ any) error {
	c.set = append(c.set, key)
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	c.deleted = append(c.deleted, keys...)
	return nil
}

var (
	storedID = uuid.MustParse("3d8f1a2b-4c5d-4e6f-9a0b-1c2d3e4f5a6b")
	stamp    = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	columns  = []string{"id", "name", "body", "description", "created_at", "updated_at"}
)

func templateRows(name string) *sqlmock.Rows {
	return sqlmock.NewRows(columns).
		AddRow(storedID.String(), name, "En {ciudadFirma}.", nil, stamp, stamp)
}

func newRepo(t *testing.T, c cache.System, logs *bytes.Buffer) (templates.System, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	sys := templates.New(
		db,
		c,
		slog.New(slog.NewTextHandler(logs, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
	)
	return sys, mock
}

func expectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestFindCacheHit(t *testing.T) {
	cached := templates.Template{ID: storedID, Name: "Indefinido", Body: "En {ciudadFirma}."}
	c := &fakeCache{
		getFn: func(key string, dest any) error {
			if key != "templates:"+storedID.String() {
				return cache.ErrMiss
			}
			*dest.(*templates.Template) = cached
			return nil
		},
	}
	sys, mock := newRepo(t, c, &bytes.Buffer{})

	got, err := sys.Find(context.Background(), storedID)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}

	if diff := cmp.Diff(cached, *got); diff != "" {
		t.Errorf("template mismatch (-want +got):\n%s", diff)
	}
	if len(c.set) != 0 {
		t.Errorf("cache rewritten on hit: %v", c.set)
	}
	expectationsMet(t, mock)
}

func TestFindCacheFallthrough(t *testing.T) {
	tests := []struct {
		name    string
		getErr  error
		wantLog bool
	}{
		{"miss", cache.ErrMiss, false},
		{"cache failure", errors.New("connection reset"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &fakeCache{
				getFn: func(string, any) error { return tt.getErr },
			}
			var logs bytes.Buffer
			sys, mock := newRepo(t, c, &logs)

			mock.ExpectQuery(regexp.QuoteMeta("FROM public.templates t")).
				WillReturnRows(templateRows("Indefinido"))

			got, err := sys.Find(context.Background(), storedID)
			if err != nil {
				t.Fatalf("Find: %v", err)
			}

			if got.ID != storedID || got.Name != "Indefinido" {
				t.Errorf("got %+v", got)
			}
			if diff := cmp.Diff([]string{"templates:" + storedID.String()}, c.set); diff != "" {
				t.Errorf("cache writes mismatch (-want +got):\n%s", diff)
			}

			logged := strings.Contains(logs.String(), "template cache read failed")
			if logged != tt.wantLog {
				t.Errorf("cache failure logged = %v, want %v\n%s", logged, tt.wantLog, logs.String())
			}
			expectationsMet(t, mock)
		})
	}
}

func TestFindNotFound(t *testing.T) {
	sys, mock := newRepo(t, &fakeCache{}, &bytes.Buffer{})

	mock.ExpectQuery(regexp.QuoteMeta("FROM public.templates t")).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := sys.Find(context.Background(), storedID)
	if !errors.Is(err, templates.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	expectationsMet(t, mock)
}

func TestUpdateInvalidatesCache(t *testing.T) {
	c := &fakeCache{}
	sys, mock := newRepo(t, c, &bytes.Buffer{})

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE templates")).
		WillReturnRows(templateRows("Plazo Fijo"))
	mock.ExpectCommit()

	got, err := sys.Update(context.Background(), storedID, templates.UpdateCommand{
		Name: "Plazo Fijo",
		Body: "En {ciudadFirma}.",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if got.Name != "Plazo Fijo" {
		t.Errorf("name = %q", got.Name)
	}
	if diff := cmp.Diff([]string{"templates:" + storedID.String()}, c.deleted); diff != "" {
		t.Errorf("invalidations mismatch (-want +got):\n%s", diff)
	}
	expectationsMet(t, mock)
}

func TestUpdateRejectsBlankBody(t *testing.T) {
	c := &fakeCache{}
	sys, mock := newRepo(t, c, &bytes.Buffer{})

	_, err := sys.Update(context.Background(), storedID, templates.UpdateCommand{
		Name: "Plazo Fijo",
		Body: "  ",
	})

	if !errors.Is(err, templates.ErrInvalidTemplate) {
		t.Errorf("err = %v, want ErrInvalidTemplate", err)
	}
	if len(c.deleted) != 0 {
		t.Errorf("cache invalidated for a rejected update: %v", c.deleted)
	}
	expectationsMet(t, mock)
}

func TestDeleteInvalidatesCache(t *testing.T) {
	tests := []struct {
		name        string
		affected    int64
		wantErr     error
		wantDeleted []string
	}{
		{"deleted", 1, nil, []string{"templates:" + storedID.String()}},
		{"missing", 0, templates.ErrNotFound, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &fakeCache{}
			sys, mock := newRepo(t, c, &bytes.Buffer{})

			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta("DELETE FROM templates")).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))
			if tt.wantErr == nil {
				mock.ExpectCommit()
			} else {
				mock.ExpectRollback()
			}

			err := sys.Delete(context.Background(), storedID)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.wantDeleted, c.deleted); diff != "" {
				t.Errorf("invalidations mismatch (-want +got):\n%s", diff)
			}
			expectationsMet(t, mock)
		})
	}
}
