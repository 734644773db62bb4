// Package result holds the ranked search hit returned by every query family.
package result

import "github.com/paperdex/paperdex/internal/domain/document"

// Component score keys recorded for auditability.
const (
	ComponentTitleSimilarity    = "title_similarity"
	ComponentAbstractSimilarity = "abstract_similarity"
	ComponentMatchedKeywords    = "matched_keywords"
	ComponentTotalKeywords      = "total_keywords"
	ComponentTextScore          = "text_score"
	ComponentKeywordScore       = "keyword_score"
)

// Result is a single scored search hit. Constructed per query, never
// persisted.
type Result struct {
	id              string
	title           string
	authors         []string
	journalName     string
	publicationYear int
	folderName      string
	keywords        []string
	score           float64
	components      map[string]float64
	matchedKeywords []string
	snippet         string
}

// New creates a result from a document, its primary score, and the component
// scores that produced it.
func New(doc document.Document, score float64, components map[string]float64) Result {
	return Result{
		id:              doc.ID(),
		title:           doc.Title(),
		authors:         doc.Authors(),
		journalName:     doc.JournalName(),
		publicationYear: doc.PublicationYear(),
		folderName:      doc.FolderName(),
		keywords:        doc.Keywords(),
		score:           score,
		components:      components,
	}
}

// WithMatchedKeywords returns a copy carrying the matched keyword list.
func (r Result) WithMatchedKeywords(matched []string) Result {
	r.matchedKeywords = matched
	return r
}

// WithSnippet returns a copy carrying an abstract snippet.
func (r Result) WithSnippet(snippet string) Result {
	r.snippet = snippet
	return r
}

// ID returns the document identifier.
func (r *Result) ID() string { return r.id }

// Title returns the document title.
func (r *Result) Title() string { return r.title }

// Authors returns the author list in display order.
func (r *Result) Authors() []string { return r.authors }

// JournalName returns the journal name ("" when absent).
func (r *Result) JournalName() string { return r.journalName }

// PublicationYear returns the publication year (0 when absent).
func (r *Result) PublicationYear() int { return r.publicationYear }

// FolderName returns the folder scope label.
func (r *Result) FolderName() string { return r.folderName }

// Keywords returns the document keyword list.
func (r *Result) Keywords() []string { return r.keywords }

// Score returns the primary relevance score.
func (r *Result) Score() float64 { return r.score }

// Components returns the sub-scores that produced the primary score.
func (r *Result) Components() map[string]float64 { return r.components }

// MatchedKeywords returns the document keywords matched by the query.
func (r *Result) MatchedKeywords() []string { return r.matchedKeywords }

// Snippet returns the abstract snippet ("" when not requested).
func (r *Result) Snippet() string { return r.snippet }
