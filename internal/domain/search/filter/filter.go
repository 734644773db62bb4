// Package filter holds the tagged equality filters accepted by the search
// operations, validated at the boundary instead of deep inside query
// construction.
package filter

import (
	"fmt"

	"github.com/paperdex/paperdex/internal/domain/document"
	"github.com/paperdex/paperdex/internal/domain/search/predicate"
)

type kind int

const (
	kindYear kind = iota + 1
	kindJournal
	kindStatus
	kindFolder
)

// Filter is one validated equality condition.
type Filter struct {
	k      kind
	year   int
	value  string
	status document.Status
}

// YearEquals creates a publication-year filter.
func YearEquals(year int) (Filter, error) {
	if year <= 0 {
		return Filter{}, fmt.Errorf("publication year must be positive, got %d", year)
	}
	return Filter{k: kindYear, year: year}, nil
}

// JournalEquals creates a journal-name filter.
func JournalEquals(name string) (Filter, error) {
	if name == "" {
		return Filter{}, fmt.Errorf("journal name is required")
	}
	return Filter{k: kindJournal, value: name}, nil
}

// StatusEquals creates a processing-status filter.
func StatusEquals(status string) (Filter, error) {
	s := document.Status(status)
	if !s.IsValid() {
		return Filter{}, fmt.Errorf("invalid status %q", status)
	}
	return Filter{k: kindStatus, status: s}, nil
}

// FolderEquals creates a folder-scope filter.
func FolderEquals(name string) (Filter, error) {
	if name == "" {
		return Filter{}, fmt.Errorf("folder name is required")
	}
	return Filter{k: kindFolder, value: name}, nil
}

// Predicate converts the filter into its store predicate.
func (f Filter) Predicate() predicate.Predicate {
	switch f.k {
	case kindYear:
		return predicate.YearEquals(f.year)
	case kindJournal:
		return predicate.JournalEquals(f.value)
	case kindStatus:
		return predicate.StatusEquals(f.status)
	case kindFolder:
		return predicate.FolderEquals(f.value)
	default:
		// Zero-value Filter matches everything.
		return predicate.And()
	}
}

// Apply converts a filter list into one conjunctive predicate.
func Apply(filters []Filter) predicate.Predicate {
	ps := make([]predicate.Predicate, 0, len(filters))
	for _, f := range filters {
		ps = append(ps, f.Predicate())
	}
	return predicate.And(ps...)
}
