package clauses

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/pacto/pkg/pagination"
)

// System defines the public contract for clause catalog operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Clause], error)

	Find(ctx context.Context, id uuid.UUID) (*Clause, error)

	// FindMany returns the entries for ids in request order, dropping
	// repeated ids. Any unknown id fails the whole call with ErrNotFound.
	FindMany(ctx context.Context, ids []uuid.UUID) ([]Clause, error)

	Create(ctx context.Context, cmd CreateCommand) (*Clause, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Seed inserts the default catalog when no entries exist and reports
	// how many were inserted.
	Seed(ctx context.Context) (int, error)
}
