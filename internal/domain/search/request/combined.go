package request

import (
	"fmt"
	"strings"

	"github.com/paperdex/paperdex/internal/domain"
	"github.com/paperdex/paperdex/internal/domain/search/filter"
	"github.com/paperdex/paperdex/internal/domain/search/keyword"
)

// CombinedRequest is a validated hybrid text+keyword query. At least one of
// the two predicates must be present.
type CombinedRequest struct {
	textQuery    string
	keywordQuery *keyword.Query
	folderName   string
	filters      []filter.Filter
	limit        int
}

// NewCombined validates combined search parameters. Fails with
// domain.ErrInvalidQuery when both the text query and the keyword query are
// absent.
func NewCombined(
	textQuery string,
	keywordQuery *keyword.Query,
	folderName string,
	filters []filter.Filter,
	limit int,
) (CombinedRequest, error) {
	textQuery = strings.TrimSpace(textQuery)
	if textQuery == "" && keywordQuery == nil {
		return CombinedRequest{}, fmt.Errorf(
			"%w: combined search requires a text query, keywords, or both", domain.ErrInvalidQuery)
	}
	if len(textQuery) > MaxQueryLength {
		return CombinedRequest{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidQuery, MaxQueryLength)
	}
	if limit <= 0 {
		limit = DefaultKeywordLimit
	}
	if limit > MaxKeywordLimit {
		limit = MaxKeywordLimit
	}
	return CombinedRequest{
		textQuery:    textQuery,
		keywordQuery: keywordQuery,
		folderName:   folderName,
		filters:      filters,
		limit:        limit,
	}, nil
}

// TextQuery returns the free-text component ("" when absent).
func (r *CombinedRequest) TextQuery() string { return r.textQuery }

// KeywordQuery returns the keyword component (nil when absent).
func (r *CombinedRequest) KeywordQuery() *keyword.Query { return r.keywordQuery }

// FolderName returns the folder scope ("" for unscoped).
func (r *CombinedRequest) FolderName() string { return r.folderName }

// Filters returns the equality filters.
func (r *CombinedRequest) Filters() []filter.Filter { return r.filters }

// Limit returns the maximum results to return.
func (r *CombinedRequest) Limit() int { return r.limit }
