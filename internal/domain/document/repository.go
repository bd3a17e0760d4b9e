package document

import (
	"context"

	"github.com/paperstack/paperstack/internal/types"
)

// Repository defines the interface for document persistence
type Repository interface {
	Create(ctx context.Context, doc *Document) error
	Get(ctx context.Context, id string) (*Document, error)
	Update(ctx context.Context, doc *Document) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *types.DocumentFilter) ([]*Document, error)
	Count(ctx context.Context, filter *types.DocumentFilter) (int, error)

	// GetByLocalID returns the document an owner previously synced from the
	// local store under the given client id
	GetByLocalID(ctx context.Context, ownerID, localID string) (*Document, error)
}
