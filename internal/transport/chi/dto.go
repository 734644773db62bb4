package chi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	domdoc "github.com/paperdex/paperdex/internal/domain/document"
	"github.com/paperdex/paperdex/internal/domain/search/filter"
	"github.com/paperdex/paperdex/internal/domain/search/result"
)

// Error response codes.
const (
	codeBadRequest           = "bad_request"
	codeValidationFailed     = "validation_failed"
	codeUnauthorized         = "unauthorized"
	codeDocumentNotFound     = "document_not_found"
	codeEmbeddingUnavailable = "embedding_unavailable"
	codeInternalError        = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type documentResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Authors         []string  `json:"authors,omitempty"`
	Abstract        string    `json:"abstract,omitempty"`
	Keywords        []string  `json:"keywords,omitempty"`
	JournalName     string    `json:"journal_name,omitempty"`
	PublicationYear int       `json:"publication_year,omitempty"`
	FolderName      string    `json:"folder_name,omitempty"`
	Status          string    `json:"status"`
	SourcePath      string    `json:"source_path,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func documentToResponse(doc *domdoc.Document) documentResponse {
	return documentResponse{
		ID:              doc.ID(),
		Title:           doc.Title(),
		Authors:         doc.Authors(),
		Abstract:        doc.Abstract(),
		Keywords:        doc.Keywords(),
		JournalName:     doc.JournalName(),
		PublicationYear: doc.PublicationYear(),
		FolderName:      doc.FolderName(),
		Status:          string(doc.Status()),
		SourcePath:      doc.SourcePath(),
		CreatedAt:       doc.CreatedAt(),
	}
}

type documentListResponse struct {
	Items  []documentResponse `json:"items"`
	Total  int                `json:"total"`
	Offset int                `json:"offset"`
	Limit  int                `json:"limit"`
}

type searchResultItem struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Authors         []string           `json:"authors,omitempty"`
	JournalName     string             `json:"journal_name,omitempty"`
	PublicationYear int                `json:"publication_year,omitempty"`
	FolderName      string             `json:"folder_name,omitempty"`
	Keywords        []string           `json:"keywords,omitempty"`
	Score           float64            `json:"score"`
	Components      map[string]float64 `json:"components,omitempty"`
	MatchedKeywords []string           `json:"matched_keywords,omitempty"`
	Snippet         string             `json:"snippet,omitempty"`
}

func searchResultToItem(r *result.Result) searchResultItem {
	return searchResultItem{
		ID:              r.ID(),
		Title:           r.Title(),
		Authors:         r.Authors(),
		JournalName:     r.JournalName(),
		PublicationYear: r.PublicationYear(),
		FolderName:      r.FolderName(),
		Keywords:        r.Keywords(),
		Score:           r.Score(),
		Components:      r.Components(),
		MatchedKeywords: r.MatchedKeywords(),
		Snippet:         r.Snippet(),
	}
}

type searchListResponse struct {
	Items []searchResultItem `json:"items"`
	Total int                `json:"total"`
}

func searchResultsToResponse(results []result.Result) searchListResponse {
	items := make([]searchResultItem, len(results))
	for i := range results {
		items[i] = searchResultToItem(&results[i])
	}
	return searchListResponse{Items: items, Total: len(items)}
}

type foldersResponse struct {
	Folders []string `json:"folders"`
}

type statusResponse struct {
	Pending   int `json:"pending"`
	Processed int `json:"processed"`
	Error     int `json:"error"`
	Total     int `json:"total"`
}

type healthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Details map[string]string `json:"details,omitempty"`
}

// filtersFromQuery parses the shared year/journal/status filter parameters.
func filtersFromQuery(r *http.Request) ([]filter.Filter, error) {
	q := r.URL.Query()
	var filters []filter.Filter

	if raw := q.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("year must be an integer, got %q", raw)
		}
		f, err := filter.YearEquals(year)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	if journal := q.Get("journal"); journal != "" {
		f, err := filter.JournalEquals(journal)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	if status := q.Get("status"); status != "" {
		f, err := filter.StatusEquals(status)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}

// intQuery parses an optional integer query parameter, returning def when absent.
func intQuery(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return v, nil
}

// floatQuery parses an optional float query parameter, returning def when absent.
func floatQuery(r *http.Request, name string, def float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", name, raw)
	}
	return v, nil
}

// boolQuery parses an optional boolean query parameter, returning false when absent.
func boolQuery(r *http.Request, name string) bool {
	switch r.URL.Query().Get(name) {
	case "true", "1":
		return true
	default:
		return false
	}
}
