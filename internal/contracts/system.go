package contracts

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/JaimeStill/pacto/pkg/pagination"
	"github.com/JaimeStill/pacto/pkg/storage"
)

// System defines the public contract for drafting and amending contracts.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Contract], error)

	Find(ctx context.Context, id uuid.UUID) (*Contract, error)

	// Preview renders a contract without validating or storing it.
	Preview(ctx context.Context, cmd CreateCommand) (*Draft, error)
	Create(ctx context.Context, cmd CreateCommand) (*Contract, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Document returns the stored contract text. The caller closes the body.
	Document(ctx context.Context, id uuid.UUID) (*storage.BlobResult, error)

	PreviewAnnex(ctx context.Context, id uuid.UUID, cmd AnnexCommand) (*AnnexDraft, error)
	CreateAnnex(ctx context.Context, id uuid.UUID, cmd AnnexCommand) (*Annex, error)
	Annexes(ctx context.Context, id uuid.UUID) ([]Annex, error)

	// Export writes every contract matching filters to w as an XLSX workbook.
	Export(ctx context.Context, filters Filters, w io.Writer) error
}
