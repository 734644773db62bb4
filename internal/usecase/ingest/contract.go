package ingest

import (
	"context"

	domdoc "github.com/paperdex/paperdex/internal/domain/document"
)

// Repository defines the storage contract for ingestion.
type Repository interface {
	// Save persists a document, keyed by ID, and records its source path.
	Save(ctx context.Context, doc domdoc.Document) error

	// SourcePaths returns the source paths of every stored document.
	SourcePaths(ctx context.Context) ([]string, error)
}

// Converter turns a source file into markdown text.
type Converter interface {
	Convert(ctx context.Context, path string) (string, error)
}
