package contracts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/pacto/drafting"
	"github.com/JaimeStill/pacto/internal/clauses"
	"github.com/JaimeStill/pacto/internal/templates"
	"github.com/JaimeStill/pacto/pkg/pagination"
	"github.com/JaimeStill/pacto/pkg/query"
	"github.com/JaimeStill/pacto/pkg/repository"
	"github.com/JaimeStill/pacto/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	templates  templates.System
	clauses    clauses.System
	settings   Settings
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a contract repository implementing the System interface.
// Rendered contract and annex text is stored as blobs; the database keeps
// the field values and clause snapshots they were rendered from.
func New(
	db *sql.DB,
	store storage.System,
	tmpls templates.System,
	cls clauses.System,
	settings Settings,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		templates:  tmpls,
		clauses:    cls,
		settings:   settings,
		logger:     logger.With("system", "contracts"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Contract], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "WorkerName", "WorkerRUT", "TemplateName")

	filters.Apply(qb)

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanContract)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	return result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Contract, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanContract)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Preview(ctx context.Context, cmd CreateCommand) (*Draft, error) {
	tmpl, cls, err := r.load(ctx, cmd.TemplateID, cmd.ClauseIDs)
	if err != nil {
		return nil, err
	}

	fields := FillDefaults(cmd.Fields, r.settings.Employer)

	return &Draft{
		Text:    r.settings.renderer().Render(tmpl.Body, fields, cls),
		Fields:  fields,
		Clauses: cls,
	}, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Contract, error) {
	fields := FillDefaults(cmd.Fields, r.settings.Employer)
	if err := Validate(fields, r.settings.Location); err != nil {
		return nil, err
	}

	tmpl, cls, err := r.load(ctx, cmd.TemplateID, cmd.ClauseIDs)
	if err != nil {
		return nil, err
	}

	fieldsJSON, err := encodeJSON(fields)
	if err != nil {
		return nil, fmt.Errorf("encode fields: %w", err)
	}
	clausesJSON, err := encodeJSON(cls)
	if err != nil {
		return nil, fmt.Errorf("encode clauses: %w", err)
	}

	text := r.settings.renderer().Render(tmpl.Body, fields, cls)

	id := uuid.New()
	key := contractKey(id)

	if err := r.storage.Upload(ctx, key, strings.NewReader(text), textContentType); err != nil {
		return nil, fmt.Errorf("upload contract text: %w", err)
	}

	insert := `
		INSERT INTO contracts(id, template_id, worker_name, worker_rut, fields, clauses, storage_key)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6::jsonb, $7)`

	insertArgs := []any{
		id,
		tmpl.ID,
		fields.Get(drafting.KeyNombreTrabajador),
		fields.Get(drafting.KeyRutTrabajador),
		fieldsJSON,
		clausesJSON,
		key,
	}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Contract, error) {
		if _, err := tx.ExecContext(ctx, insert, insertArgs...); err != nil {
			return Contract{}, err
		}
		q, args := query.NewBuilder(projection).BuildSingle("ID", id)
		return repository.QueryOne(ctx, tx, q, args, scanContract)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapReference(err, ErrNotFound, ErrDuplicate, templates.ErrNotFound)
	}

	r.logger.Info("contract created", "id", c.ID, "worker_rut", c.WorkerRUT, "template", c.TemplateName)
	return &c, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.Find(ctx, id); err != nil {
		return err
	}

	err := repository.InTx(ctx, r.db, func(tx *sql.Tx) error {
		return repository.ExecExpectOne(ctx, tx, "DELETE FROM contracts WHERE id = $1", id)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.deleteBlobs(ctx, contractPrefix(id))

	r.logger.Info("contract deleted", "id", id)
	return nil
}

func (r *repo) Document(ctx context.Context, id uuid.UUID) (*storage.BlobResult, error) {
	c, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	return r.storage.Download(ctx, c.StorageKey)
}

func (r *repo) PreviewAnnex(ctx context.Context, id uuid.UUID, cmd AnnexCommand) (*AnnexDraft, error) {
	_, draft, err := r.amend(ctx, id, cmd)
	return draft, err
}

func (r *repo) CreateAnnex(ctx context.Context, id uuid.UUID, cmd AnnexCommand) (*Annex, error) {
	if err := validateReason(cmd.Reason); err != nil {
		return nil, err
	}

	c, draft, err := r.amend(ctx, id, cmd)
	if err != nil {
		return nil, err
	}
	if draft.ChangeSet.Unchanged {
		return nil, ErrNoChanges
	}

	changesJSON, err := encodeJSON(draft.ChangeSet.Changes)
	if err != nil {
		return nil, fmt.Errorf("encode changes: %w", err)
	}
	addedJSON, err := encodeJSON(draft.ChangeSet.AddedClauses)
	if err != nil {
		return nil, fmt.Errorf("encode clauses: %w", err)
	}
	fieldsJSON, err := encodeJSON(draft.Revision.Fields)
	if err != nil {
		return nil, fmt.Errorf("encode fields: %w", err)
	}
	clausesJSON, err := encodeJSON(draft.Revision.Clauses)
	if err != nil {
		return nil, fmt.Errorf("encode clauses: %w", err)
	}

	annexID := uuid.New()
	key := annexKey(c.ID, annexID)

	if err := r.storage.Upload(ctx, key, strings.NewReader(draft.Text), textContentType); err != nil {
		return nil, fmt.Errorf("upload annex text: %w", err)
	}

	insert := `
		INSERT INTO annexes(id, contract_id, reason, changes, clauses, storage_key)
		VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6)
		RETURNING id, contract_id, reason, changes, clauses, storage_key, created_at`

	insertArgs := []any{annexID, c.ID, strings.TrimSpace(cmd.Reason), changesJSON, addedJSON, key}

	update := `
		UPDATE contracts
		SET fields = $1::jsonb, clauses = $2::jsonb, updated_at = NOW()
		WHERE id = $3 AND updated_at = $4`

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Annex, error) {
		a, err := repository.QueryOne(ctx, tx, insert, insertArgs, scanAnnex)
		if err != nil {
			return Annex{}, err
		}

		if err := repository.ExecExpectOne(
			ctx, tx, update,
			fieldsJSON, clausesJSON, c.ID, c.UpdatedAt,
		); err != nil {
			return Annex{}, err
		}
		return a, nil
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapReference(err, ErrStale, ErrDuplicate, ErrNotFound)
	}

	r.logger.Info(
		"annex created",
		"id", a.ID,
		"contract_id", c.ID,
		"changes", len(a.Changes),
		"clauses", len(a.Clauses),
	)
	return &a, nil
}

func (r *repo) Annexes(ctx context.Context, id uuid.UUID) ([]Annex, error) {
	if _, err := r.Find(ctx, id); err != nil {
		return nil, err
	}

	q, args := query.
		NewBuilder(annexProjection, annexSort).
		WhereEquals("ContractID", id).
		Build()

	list, err := repository.QueryMany(ctx, r.db, q, args, scanAnnex)
	if err != nil {
		return nil, fmt.Errorf("query annexes: %w", err)
	}
	return list, nil
}

func (r *repo) Export(ctx context.Context, filters Filters, w io.Writer) error {
	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	q, args := qb.Build()
	list, err := repository.QueryMany(ctx, r.db, q, args, scanContract)
	if err != nil {
		return fmt.Errorf("query contracts: %w", err)
	}

	if err := WriteWorkbook(w, list, r.settings.Location); err != nil {
		return err
	}

	r.logger.Info("contracts exported", "count", len(list))
	return nil
}

// load fetches the template and the requested clauses concurrently.
func (r *repo) load(
	ctx context.Context,
	templateID uuid.UUID,
	clauseIDs []uuid.UUID,
) (*templates.Template, []drafting.Clause, error) {
	var (
		tmpl *templates.Template
		list []clauses.Clause
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		t, err := r.templates.Find(gctx, templateID)
		if err != nil {
			return fmt.Errorf("load template: %w", err)
		}
		tmpl = t
		return nil
	})

	g.Go(func() error {
		l, err := r.clauses.FindMany(gctx, clauseIDs)
		if err != nil {
			return fmt.Errorf("load clauses: %w", err)
		}
		list = l
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return tmpl, clauses.Drafts(list), nil
}

// amend loads the contract and the clauses to add, then diffs the current
// revision against the amended one and composes the annex text.
func (r *repo) amend(ctx context.Context, id uuid.UUID, cmd AnnexCommand) (*Contract, *AnnexDraft, error) {
	date, err := r.annexDate(cmd.Date)
	if err != nil {
		return nil, nil, err
	}

	var (
		c     *Contract
		added []clauses.Clause
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		found, err := r.Find(gctx, id)
		c = found
		return err
	})

	g.Go(func() error {
		l, err := r.clauses.FindMany(gctx, cmd.ClauseIDs)
		if err != nil {
			return fmt.Errorf("load clauses: %w", err)
		}
		added = l
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	keys := drafting.AmendableKeys()
	amended := Amend(c.Revision(), cmd.Fields, clauses.Drafts(added))
	cs := drafting.Diff(c.Revision(), amended, keys)

	text := drafting.ComposeAnnex(drafting.AnnexHeader{
		WorkerName: c.WorkerName,
		WorkerRUT:  c.WorkerRUT,
		Company:    c.Fields.Get(drafting.KeyNombreEmpresa),
		Date:       date,
		Reason:     cmd.Reason,
	}, cs)

	return c, &AnnexDraft{
		Text:      text,
		ChangeSet: cs,
		Revision:  amended,
	}, nil
}

func (r *repo) annexDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return r.settings.now(), nil
	}
	t, ok := drafting.ParseDate(s, r.settings.Location)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: annex date %q", ErrInvalidDates, s)
	}
	return t, nil
}

// deleteBlobs removes every blob under prefix, logging failures.
func (r *repo) deleteBlobs(ctx context.Context, prefix string) {
	marker := ""
	for {
		page, err := r.storage.List(ctx, prefix, marker, storage.MaxListCap)
		if err != nil {
			r.logger.Warn("blob list failed after DB delete", "prefix", prefix, "error", err)
			return
		}

		for _, b := range page.Blobs {
			if err := r.storage.Delete(ctx, b.Key); err != nil && !errors.Is(err, storage.ErrNotFound) {
				r.logger.Warn("blob delete failed after DB delete", "key", b.Key, "error", err)
			}
		}

		if page.NextMarker == "" {
			return
		}
		marker = page.NextMarker
	}
}

// Amend applies amended values for the amendable fields and appends new
// clauses not already attached. The original revision is not modified.
func Amend(original drafting.Revision, fields drafting.FieldSet, added []drafting.Clause) drafting.Revision {
	out := drafting.Revision{
		Fields:  original.Fields.Merge(fields, drafting.AmendableKeys()),
		Clauses: slices.Clone(original.Clauses),
	}
	if out.Clauses == nil {
		out.Clauses = []drafting.Clause{}
	}

	for _, c := range added {
		out.Clauses, _ = drafting.AppendClause(out.Clauses, c)
	}
	return out
}

// BlobRoot is the storage prefix under which all contract documents live.
const BlobRoot = "contracts"

func contractPrefix(id uuid.UUID) string {
	return storage.JoinKey(BlobRoot, id.String()) + "/"
}

func contractKey(id uuid.UUID) string {
	return storage.JoinKey(BlobRoot, id.String(), "contrato.txt")
}

func annexKey(contractID, annexID uuid.UUID) string {
	return storage.JoinKey(BlobRoot, contractID.String(), "anexos", annexID.String()+".txt")
}
