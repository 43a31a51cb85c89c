package clauses

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/pacto/pkg/pagination"
	"github.com/JaimeStill/pacto/pkg/query"
	"github.com/JaimeStill/pacto/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a clause repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "clauses"),
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
) (*pagination.PageResult[Clause], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Title", "Body")

	filters.Apply(qb)

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanClause)
	if err != nil {
		return nil, fmt.Errorf("list clauses: %w", err)
	}
	return result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Clause, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanClause)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &c, nil
}

func (r *repo) FindMany(ctx context.Context, ids []uuid.UUID) ([]Clause, error) {
	order := Unique(ids)
	if len(order) == 0 {
		return []Clause{}, nil
	}

	values := make([]any, len(order))
	for i, id := range order {
		values[i] = id
	}

	q, args := query.NewBuilder(projection).WhereIn("ID", values).Build()

	found, err := repository.QueryMany(ctx, r.db, q, args, scanClause)
	if err != nil {
		return nil, fmt.Errorf("query clauses: %w", err)
	}

	return Order(order, found)
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Clause, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Clause, error) {
		return insert(ctx, tx, cmd)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("clause created", "id", c.ID, "title", c.Title)
	return &c, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.InTx(ctx, r.db, func(tx *sql.Tx) error {
		return repository.ExecExpectOne(ctx, tx, "DELETE FROM clauses WHERE id = $1", id)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("clause deleted", "id", id)
	return nil
}

func (r *repo) Seed(ctx context.Context) (int, error) {
	entries, err := DefaultCatalog()
	if err != nil {
		return 0, err
	}

	n, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int, error) {
		count, err := repository.QueryScalar[int](ctx, tx, "SELECT COUNT(*) FROM clauses")
		if err != nil {
			return 0, err
		}
		if count > 0 {
			return 0, nil
		}

		for _, e := range entries {
			if _, err := insert(ctx, tx, e); err != nil {
				return 0, err
			}
		}
		return len(entries), nil
	})

	if err != nil {
		return 0, fmt.Errorf("seed clauses: %w", err)
	}

	if n > 0 {
		r.logger.Info("clause catalog seeded", "count", n)
	}
	return n, nil
}

func insert(ctx context.Context, tx *sql.Tx, cmd CreateCommand) (Clause, error) {
	q := `
		INSERT INTO clauses(title, body)
		VALUES ($1, $2)
		RETURNING id, title, body, created_at`

	return repository.QueryOne(ctx, tx, q, []any{cmd.Title, cmd.Body}, scanClause)
}
