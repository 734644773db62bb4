// Package request holds validated query value objects for the four search
// families. Validation and normalization happen once here, at query entry;
// the engine can assume every request it sees is well-formed.
package request

import (
	"fmt"
	"strings"

	"github.com/paperdex/paperdex/internal/domain"
	"github.com/paperdex/paperdex/internal/domain/search/filter"
	"github.com/paperdex/paperdex/internal/domain/search/keyword"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed free-text query length.
	MaxQueryLength = 4096

	DefaultTextLimit = 10
	MaxTextLimit     = 50

	DefaultKeywordLimit = 50
	MaxKeywordLimit     = 100
)

// TextRequest is a validated free-text search query.
type TextRequest struct {
	query          string
	folderName     string
	filters        []filter.Filter
	limit          int
	includeSnippet bool
}

// NewText validates and normalizes free-text search parameters.
// Defaults: limit=10, clamped to 50.
func NewText(
	query, folderName string,
	filters []filter.Filter,
	limit int,
	includeSnippet bool,
) (TextRequest, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return TextRequest{}, fmt.Errorf("%w: query is required", domain.ErrInvalidQuery)
	}
	if len(query) > MaxQueryLength {
		return TextRequest{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidQuery, MaxQueryLength)
	}
	if limit <= 0 {
		limit = DefaultTextLimit
	}
	if limit > MaxTextLimit {
		limit = MaxTextLimit
	}
	return TextRequest{
		query:          query,
		folderName:     folderName,
		filters:        filters,
		limit:          limit,
		includeSnippet: includeSnippet,
	}, nil
}

// Query returns the free-text query.
func (r *TextRequest) Query() string { return r.query }

// FolderName returns the folder scope ("" for unscoped).
func (r *TextRequest) FolderName() string { return r.folderName }

// Filters returns the equality filters.
func (r *TextRequest) Filters() []filter.Filter { return r.filters }

// Limit returns the maximum results to return.
func (r *TextRequest) Limit() int { return r.limit }

// IncludeSnippet reports whether results should carry an abstract snippet.
func (r *TextRequest) IncludeSnippet() bool { return r.includeSnippet }

// KeywordRequest is a validated keyword search query.
type KeywordRequest struct {
	query          keyword.Query
	folderName     string
	limit          int
	includeSnippet bool
}

// NewKeyword validates keyword search parameters.
// Defaults: limit=50, clamped to 100. Keyword normalization happens in
// keyword.NewQuery.
func NewKeyword(
	query keyword.Query,
	folderName string,
	limit int,
	includeSnippet bool,
) (KeywordRequest, error) {
	if len(query.Keywords()) == 0 {
		return KeywordRequest{}, fmt.Errorf("%w: at least one keyword is required", domain.ErrInvalidQuery)
	}
	if limit <= 0 {
		limit = DefaultKeywordLimit
	}
	if limit > MaxKeywordLimit {
		limit = MaxKeywordLimit
	}
	return KeywordRequest{
		query:          query,
		folderName:     folderName,
		limit:          limit,
		includeSnippet: includeSnippet,
	}, nil
}

// Query returns the keyword query.
func (r *KeywordRequest) Query() keyword.Query { return r.query }

// FolderName returns the folder scope ("" for unscoped).
func (r *KeywordRequest) FolderName() string { return r.folderName }

// Limit returns the maximum results to return.
func (r *KeywordRequest) Limit() int { return r.limit }

// IncludeSnippet reports whether results should carry an abstract snippet.
func (r *KeywordRequest) IncludeSnippet() bool { return r.includeSnippet }
