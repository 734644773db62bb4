package document

import (
	"context"

	domdoc "github.com/paperdex/paperdex/internal/domain/document"
	"github.com/paperdex/paperdex/internal/domain/search/predicate"
)

// Repository defines the storage contract for document reads.
type Repository interface {
	Get(ctx context.Context, id string) (domdoc.Document, error)
	Scan(ctx context.Context, pred predicate.Predicate) ([]domdoc.Document, error)
	Delete(ctx context.Context, id string) error
}
