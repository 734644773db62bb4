package document

import (
	"fmt"
	"strings"
	"time"
)

// Status is the processing state of a document record.
type Status string

// Document lifecycle states.
const (
	StatusPending   Status = "pending"
	StatusProcessed Status = "processed"
	StatusError     Status = "error"
)

// IsValid checks if the status is one of the supported values.
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusProcessed || s == StatusError
}

// Document is the scholarly document aggregate (immutable value object).
// Embeddings may be absent; a document without both embeddings is excluded
// from similarity queries.
type Document struct {
	id                string
	title             string
	authors           []string
	abstract          string
	keywords          []string
	journalName       string
	publicationYear   int
	folderName        string
	status            Status
	sourcePath        string
	titleEmbedding    []float32
	abstractEmbedding []float32
	createdAt         time.Time
}

// New validates and creates a Document in the pending state.
// ID and title are required; authors and keywords may be empty.
func New(id, title string, authors []string, sourcePath string, createdAt time.Time) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID is required")
	}
	if strings.TrimSpace(title) == "" {
		return Document{}, fmt.Errorf("title is required")
	}
	return Document{
		id:         id,
		title:      title,
		authors:    cloneStrings(authors),
		status:     StatusPending,
		sourcePath: sourcePath,
		createdAt:  createdAt,
	}, nil
}

// Reconstruct creates a Document without validation (storage hydration).
func Reconstruct(
	id, title string, authors []string, abstract string, keywords []string,
	journalName string, publicationYear int, folderName string,
	status Status, sourcePath string,
	titleEmbedding, abstractEmbedding []float32, createdAt time.Time,
) Document {
	return Document{
		id:                id,
		title:             title,
		authors:           authors,
		abstract:          abstract,
		keywords:          keywords,
		journalName:       journalName,
		publicationYear:   publicationYear,
		folderName:        folderName,
		status:            status,
		sourcePath:        sourcePath,
		titleEmbedding:    titleEmbedding,
		abstractEmbedding: abstractEmbedding,
		createdAt:         createdAt,
	}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// Authors returns the author list in display order.
func (d *Document) Authors() []string { return d.authors }

// Abstract returns the abstract text ("" when absent).
func (d *Document) Abstract() string { return d.abstract }

// Keywords returns the keyword list in display order.
func (d *Document) Keywords() []string { return d.keywords }

// JournalName returns the journal name ("" when absent).
func (d *Document) JournalName() string { return d.journalName }

// PublicationYear returns the publication year (0 when absent).
func (d *Document) PublicationYear() int { return d.publicationYear }

// FolderName returns the flat folder scope label ("" for the root).
func (d *Document) FolderName() string { return d.folderName }

// Status returns the processing status.
func (d *Document) Status() Status { return d.status }

// SourcePath returns the canonical source location used for ingestion dedup.
func (d *Document) SourcePath() string { return d.sourcePath }

// TitleEmbedding returns the title embedding vector (nil when absent).
func (d *Document) TitleEmbedding() []float32 { return d.titleEmbedding }

// AbstractEmbedding returns the abstract embedding vector (nil when absent).
func (d *Document) AbstractEmbedding() []float32 { return d.abstractEmbedding }

// CreatedAt returns the record creation time, the recency tie-break key.
func (d *Document) CreatedAt() time.Time { return d.createdAt }

// HasEmbeddings reports whether both embedding vectors are present.
func (d *Document) HasEmbeddings() bool {
	return len(d.titleEmbedding) > 0 && len(d.abstractEmbedding) > 0
}

// WithAbstract returns a copy with the abstract set.
func (d *Document) WithAbstract(abstract string) Document {
	c := *d
	c.abstract = abstract
	return c
}

// WithKeywords returns a copy with the keyword list set.
func (d *Document) WithKeywords(keywords []string) Document {
	c := *d
	c.keywords = cloneStrings(keywords)
	return c
}

// WithJournal returns a copy with journal name and publication year set.
func (d *Document) WithJournal(name string, year int) Document {
	c := *d
	c.journalName = name
	c.publicationYear = year
	return c
}

// WithFolder returns a copy with the folder scope label set.
func (d *Document) WithFolder(name string) Document {
	c := *d
	c.folderName = name
	return c
}

// WithEmbeddings returns a copy with both embedding vectors set.
func (d *Document) WithEmbeddings(title, abstract []float32) Document {
	c := *d
	c.titleEmbedding = title
	c.abstractEmbedding = abstract
	return c
}

// MarkProcessed returns a copy in the processed state.
func (d *Document) MarkProcessed() Document {
	c := *d
	c.status = StatusProcessed
	return c
}

// MarkError returns a copy in the error state.
func (d *Document) MarkError() Document {
	c := *d
	c.status = StatusError
	return c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	c := make([]string, len(s))
	copy(c, s)
	return c
}
