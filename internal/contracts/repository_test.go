package contracts_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JaimeStill/pacto/drafting"
	"github.com/JaimeStill/pacto/internal/contracts"
	"github.com/JaimeStill/pacto/internal/templates"
	"github.com/JaimeStill/pacto/pkg/lifecycle"
	"github.com/JaimeStill/pacto/pkg/pagination"
	"github.com/JaimeStill/pacto/pkg/storage"
)

type recordingStorage struct {
	mu       sync.Mutex
	uploaded []string
	deleted  []string
}

func (s *recordingStorage) Start(*lifecycle.Coordinator) error { return nil }
func (s *recordingStorage) Ready() bool                        { return true }

func (s *recordingStorage) Upload(_ context.Context, key string, r io.Reader, _ string) error {
	if _, err := io.ReadAll(r); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploaded = append(s.uploaded, key)
	return nil
}

func (s *recordingStorage) Download(context.Context, string) (*storage.BlobResult, error) {
	return nil, storage.ErrNotFound
}

func (s *recordingStorage) Find(context.Context, string) (*storage.BlobMeta, error) {
	return nil, storage.ErrNotFound
}

func (s *recordingStorage) List(context.Context, string, string, int32) (*storage.BlobList, error) {
	return &storage.BlobList{}, nil
}

func (s *recordingStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *recordingStorage) Exists(context.Context, string) (bool, error) {
	return false, nil
}

var (
	annexID = uuid.MustParse("1f2e3d4c-5b6a-4978-8695-a4b3c2d1e0f9")
	stamp   = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	contractColumns = []string{
		"id", "template_id", "worker_name", "worker_rut", "fields", "clauses",
		"storage_key", "created_at", "updated_at", "name",
	}
	annexColumns = []string{
		"id", "contract_id", "reason", "changes", "clauses", "storage_key", "created_at",
	}
)

func newStoredSystem(t *testing.T, store storage.System) (contracts.System, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	var requested []uuid.UUID
	sys := contracts.New(
		db,
		store,
		stubTemplates(),
		stubClauses(&requested),
		contracts.Settings{
			Location: time.UTC,
			Employer: drafting.FieldSet{
				drafting.KeyNombreEmpresa: "Pacto SpA",
				drafting.KeyCiudadFirma:   "Santiago",
			},
		},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
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

func expectContract(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(regexp.QuoteMeta("FROM public.contracts c")).
		WillReturnRows(sqlmock.NewRows(contractColumns).AddRow(
			contractID.String(),
			templateID.String(),
			"Ana Pérez",
			"12.345.678-5",
			`{"nombreTrabajador":"Ana Pérez","cargoTrabajador":"Analista","sueldo":"800000"}`,
			`[]`,
			"contracts/"+contractID.String()+"/contrato.txt",
			stamp,
			stamp,
			"Contrato Indefinido",
		))
}

func annexRows() *sqlmock.Rows {
	return sqlmock.NewRows(annexColumns).AddRow(
		annexID.String(),
		contractID.String(),
		"Ascenso",
		`[{"key":"sueldo","label":"Sueldo Base","old":"$800.000","new":"$900.000"}]`,
		`[]`,
		"contracts/"+contractID.String()+"/anexos/"+annexID.String()+".txt",
		stamp,
	)
}

func raise() contracts.AnnexCommand {
	return contracts.AnnexCommand{
		Fields: drafting.FieldSet{drafting.KeySueldo: "900000"},
		Reason: "Ascenso",
	}
}

func TestCreateAnnexStaleContract(t *testing.T) {
	store := &recordingStorage{}
	sys, mock := newStoredSystem(t, store)

	expectContract(mock)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO annexes")).WillReturnRows(annexRows())
	mock.ExpectExec(regexp.QuoteMeta("UPDATE contracts")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), stamp).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := sys.CreateAnnex(context.Background(), contractID, raise())
	if !errors.Is(err, contracts.ErrStale) {
		t.Fatalf("err = %v, want ErrStale", err)
	}

	if len(store.uploaded) != 1 {
		t.Fatalf("uploads = %v, want one annex blob", store.uploaded)
	}
	prefix := "contracts/" + contractID.String() + "/anexos/"
	if !strings.HasPrefix(store.uploaded[0], prefix) {
		t.Errorf("annex key %q outside %q", store.uploaded[0], prefix)
	}
	if diff := cmp.Diff(store.uploaded, store.deleted); diff != "" {
		t.Errorf("uploaded blob not removed (-uploaded +deleted):\n%s", diff)
	}
	expectationsMet(t, mock)
}

func TestCreateAnnexContractRemoved(t *testing.T) {
	store := &recordingStorage{}
	sys, mock := newStoredSystem(t, store)

	expectContract(mock)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO annexes")).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()

	_, err := sys.CreateAnnex(context.Background(), contractID, raise())
	if !errors.Is(err, contracts.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(store.uploaded) != 1 {
		t.Fatalf("uploads = %v, want one annex blob", store.uploaded)
	}
	if diff := cmp.Diff(store.uploaded, store.deleted); diff != "" {
		t.Errorf("uploaded blob not removed (-uploaded +deleted):\n%s", diff)
	}
	expectationsMet(t, mock)
}

func TestCreateAnnexCommits(t *testing.T) {
	store := &recordingStorage{}
	sys, mock := newStoredSystem(t, store)

	expectContract(mock)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO annexes")).WillReturnRows(annexRows())
	mock.ExpectExec(regexp.QuoteMeta("UPDATE contracts")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	a, err := sys.CreateAnnex(context.Background(), contractID, raise())
	if err != nil {
		t.Fatalf("CreateAnnex: %v", err)
	}

	if a.ID != annexID || a.ContractID != contractID {
		t.Errorf("annex = %+v", a)
	}
	if len(a.Changes) != 1 || a.Changes[0].Key != drafting.KeySueldo {
		t.Errorf("changes = %+v", a.Changes)
	}
	if len(store.deleted) != 0 {
		t.Errorf("blobs deleted after commit: %v", store.deleted)
	}
	expectationsMet(t, mock)
}

func TestCreateAnnexWithoutChanges(t *testing.T) {
	store := &recordingStorage{}
	sys, mock := newStoredSystem(t, store)

	expectContract(mock)

	cmd := raise()
	cmd.Fields = drafting.FieldSet{drafting.KeySueldo: "800000"}

	_, err := sys.CreateAnnex(context.Background(), contractID, cmd)
	if !errors.Is(err, contracts.ErrNoChanges) {
		t.Fatalf("err = %v, want ErrNoChanges", err)
	}
	if len(store.uploaded) != 0 {
		t.Errorf("annex without changes uploaded: %v", store.uploaded)
	}
	expectationsMet(t, mock)
}

func TestCreateRemovesBlobWhenInsertFails(t *testing.T) {
	store := &recordingStorage{}
	sys, mock := newStoredSystem(t, store)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO contracts")).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()

	_, err := sys.Create(context.Background(), contracts.CreateCommand{
		TemplateID: templateID,
		Fields:     validFields(),
	})
	if !errors.Is(err, templates.ErrNotFound) {
		t.Fatalf("err = %v, want templates.ErrNotFound", err)
	}

	if len(store.uploaded) != 1 || !strings.HasSuffix(store.uploaded[0], "/contrato.txt") {
		t.Fatalf("uploads = %v, want one contract blob", store.uploaded)
	}
	if diff := cmp.Diff(store.uploaded, store.deleted); diff != "" {
		t.Errorf("uploaded blob not removed (-uploaded +deleted):\n%s", diff)
	}
	expectationsMet(t, mock)
}
