package templates

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/pacto/pkg/cache"
	"github.com/JaimeStill/pacto/pkg/pagination"
	"github.com/JaimeStill/pacto/pkg/query"
	"github.com/JaimeStill/pacto/pkg/repository"
)

type repo struct {
	db         *sql.DB
	cache      cache.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a template repository implementing the System interface.
// Find reads through the cache; Update and Delete invalidate it.
func New(
	db *sql.DB,
	c cache.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		cache:      c,
		logger:     logger.With("system", "templates"),
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
) (*pagination.PageResult[Template], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Description")

	filters.Apply(qb)

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanTemplate)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Template, error) {
	var cached Template
	err := r.cache.Get(ctx, cacheKey(id), &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		r.logger.Warn("template cache read failed", "id", id, "error", err)
	}

	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	t, err := repository.QueryOne(ctx, r.db, q, args, scanTemplate)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if err := r.cache.Set(ctx, cacheKey(id), t); err != nil {
		r.logger.Warn("template cache write failed", "id", id, "error", err)
	}

	return &t, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Template, error) {
	if err := validate(cmd.Name, cmd.Body); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO templates(name, body, description)
		VALUES ($1, $2, $3)
		RETURNING id, name, body, description, created_at, updated_at`

	args := []any{cmd.Name, cmd.Body, cmd.Description}

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Template, error) {
		return repository.QueryOne(ctx, tx, q, args, scanTemplate)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("template created", "id", t.ID, "name", t.Name)
	return &t, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Template, error) {
	if err := validate(cmd.Name, cmd.Body); err != nil {
		return nil, err
	}

	q := `
		UPDATE templates
		SET name = $1, body = $2, description = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id, name, body, description, created_at, updated_at`

	args := []any{cmd.Name, cmd.Body, cmd.Description, id}

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Template, error) {
		return repository.QueryOne(ctx, tx, q, args, scanTemplate)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.invalidate(ctx, id)
	r.logger.Info("template updated", "id", t.ID, "name", t.Name)
	return &t, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.InTx(ctx, r.db, func(tx *sql.Tx) error {
		return repository.ExecExpectOne(ctx, tx, "DELETE FROM templates WHERE id = $1", id)
	})

	if err != nil {
		return repository.MapReference(err, ErrNotFound, ErrDuplicate, ErrInUse)
	}

	r.invalidate(ctx, id)
	r.logger.Info("template deleted", "id", id)
	return nil
}

func (r *repo) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, cacheKey(id)); err != nil {
		r.logger.Warn("template cache invalidation failed", "id", id, "error", err)
	}
}

func cacheKey(id uuid.UUID) string {
	return "templates:" + id.String()
}
