package domain

import "context"

// DocumentMetadata holds the bibliographic fields an extractor pulls from a
// converted document.
type DocumentMetadata struct {
	Title           string
	Authors         []string
	JournalName     string
	PublicationYear int
	Abstract        string
	Keywords        []string
}

// MetadataExtractor is the shared metadata extraction contract between layers.
// Implementations call out to an LLM and are expected to be slow.
type MetadataExtractor interface {
	ExtractMetadata(ctx context.Context, markdown string) (DocumentMetadata, error)
}
