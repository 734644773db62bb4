package document

import (
	"time"

	domdoc "github.com/paperdex/paperdex/internal/domain/document"
)

// record is the stored JSON form of a document.
type record struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Authors           []string  `json:"authors,omitempty"`
	Abstract          string    `json:"abstract,omitempty"`
	Keywords          []string  `json:"keywords,omitempty"`
	JournalName       string    `json:"journal_name,omitempty"`
	PublicationYear   int       `json:"publication_year,omitempty"`
	FolderName        string    `json:"folder_name,omitempty"`
	Status            string    `json:"status"`
	SourcePath        string    `json:"source_path,omitempty"`
	TitleEmbedding    []float32 `json:"title_embedding,omitempty"`
	AbstractEmbedding []float32 `json:"abstract_embedding,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func toRecord(doc domdoc.Document) record {
	return record{
		ID:                doc.ID(),
		Title:             doc.Title(),
		Authors:           doc.Authors(),
		Abstract:          doc.Abstract(),
		Keywords:          doc.Keywords(),
		JournalName:       doc.JournalName(),
		PublicationYear:   doc.PublicationYear(),
		FolderName:        doc.FolderName(),
		Status:            string(doc.Status()),
		SourcePath:        doc.SourcePath(),
		TitleEmbedding:    doc.TitleEmbedding(),
		AbstractEmbedding: doc.AbstractEmbedding(),
		CreatedAt:         doc.CreatedAt(),
	}
}

func (r record) toDomain() domdoc.Document {
	return domdoc.Reconstruct(
		r.ID, r.Title, r.Authors, r.Abstract, r.Keywords,
		r.JournalName, r.PublicationYear, r.FolderName,
		domdoc.Status(r.Status), r.SourcePath,
		r.TitleEmbedding, r.AbstractEmbedding, r.CreatedAt,
	)
}
