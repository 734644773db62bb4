package search

import (
	"context"

	domdoc "github.com/paperdex/paperdex/internal/domain/document"
	"github.com/paperdex/paperdex/internal/domain/search/predicate"
)

// Repository defines the storage contract for search operations.
type Repository interface {
	// Scan returns every document satisfying the predicate. A nil predicate
	// matches everything.
	Scan(ctx context.Context, pred predicate.Predicate) ([]domdoc.Document, error)

	// Get returns a document by ID, or domain.ErrDocumentNotFound.
	Get(ctx context.Context, id string) (domdoc.Document, error)
}
