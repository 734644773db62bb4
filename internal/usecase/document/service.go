// Package document implements the catalog read side: single lookups, paged
// listings, and the folder/status aggregates the API exposes.
package document

import (
	"context"
	"fmt"
	"sort"

	domdoc "github.com/paperdex/paperdex/internal/domain/document"
	"github.com/paperdex/paperdex/internal/domain/search/filter"
	"github.com/paperdex/paperdex/internal/domain/search/predicate"
)

// Service handles document reads and catalog aggregates.
type Service struct {
	repo            Repository
	defaultPageSize int
	maxPageSize     int
}

// New creates a document service.
func New(repo Repository) *Service {
	return &Service{
		repo:            repo,
		defaultPageSize: 20,
		maxPageSize:     100,
	}
}

// WithPagination configures page size limits.
func (s *Service) WithPagination(defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize > 0 {
		s.defaultPageSize = defaultPageSize
	}
	if maxPageSize > 0 {
		s.maxPageSize = maxPageSize
	}
	return s
}

// Get returns a document by ID.
func (s *Service) Get(ctx context.Context, id string) (domdoc.Document, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// Delete removes a document by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// Page is one page of a document listing.
type Page struct {
	Documents []domdoc.Document
	Total     int
	Offset    int
	Limit     int
}

// List returns documents ordered most recent first, optionally scoped to a
// folder and filtered. Total counts all matches before pagination.
func (s *Service) List(ctx context.Context, folderName string, filters []filter.Filter, offset, limit int) (Page, error) {
	if limit <= 0 {
		limit = s.defaultPageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	ps := make([]predicate.Predicate, 0, 2)
	if folderName != "" {
		ps = append(ps, predicate.FolderEquals(folderName))
	}
	if len(filters) > 0 {
		ps = append(ps, filter.Apply(filters))
	}

	docs, err := s.repo.Scan(ctx, predicate.And(ps...))
	if err != nil {
		return Page{}, fmt.Errorf("scan documents: %w", err)
	}

	sort.Slice(docs, func(i, j int) bool {
		ti, tj := docs[i].CreatedAt(), docs[j].CreatedAt()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return docs[i].ID() < docs[j].ID()
	})

	total := len(docs)
	if offset >= total {
		return Page{Documents: []domdoc.Document{}, Total: total, Offset: offset, Limit: limit}, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return Page{Documents: docs[offset:end], Total: total, Offset: offset, Limit: limit}, nil
}

// Folders returns the distinct folder labels in lexical order. The unscoped
// root ("") is omitted.
func (s *Service) Folders(ctx context.Context) ([]string, error) {
	docs, err := s.repo.Scan(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("scan documents: %w", err)
	}

	seen := make(map[string]struct{}, len(docs))
	folders := make([]string, 0, len(docs))
	for _, d := range docs {
		name := d.FolderName()
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		folders = append(folders, name)
	}
	sort.Strings(folders)
	return folders, nil
}

// StatusCounts holds per-state document totals.
type StatusCounts struct {
	Pending   int
	Processed int
	Error     int
	Total     int
}

// Status returns document counts per processing state.
func (s *Service) Status(ctx context.Context) (StatusCounts, error) {
	docs, err := s.repo.Scan(ctx, nil)
	if err != nil {
		return StatusCounts{}, fmt.Errorf("scan documents: %w", err)
	}

	var counts StatusCounts
	for _, d := range docs {
		switch d.Status() {
		case domdoc.StatusPending:
			counts.Pending++
		case domdoc.StatusProcessed:
			counts.Processed++
		case domdoc.StatusError:
			counts.Error++
		}
		counts.Total++
	}
	return counts, nil
}
