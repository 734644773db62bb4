package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/paperdex/paperdex/internal/domain"
	domdoc "github.com/paperdex/paperdex/internal/domain/document"
	"github.com/paperdex/paperdex/internal/domain/search/filter"
	"github.com/paperdex/paperdex/internal/domain/search/predicate"
	"github.com/paperdex/paperdex/internal/domain/search/request"
	"github.com/paperdex/paperdex/internal/domain/search/result"
)

// Free-text hit weights. Summed per document, so a title-only hit (0.6)
// always outranks an abstract-only hit (0.3), which outranks an author-only
// hit (0.1). The score orders results and is not a probability.
const (
	titleHitWeight    = 0.6
	abstractHitWeight = 0.3
	authorHitWeight   = 0.1
)

const defaultEmbedTimeout = 30 * time.Second

// Service answers the four query families: free-text, keyword, weighted
// dual-embedding similarity, and combined. All operations are read-only and
// safe for concurrent use.
type Service struct {
	repo         Repository
	embed        domain.Embedder
	embedTimeout time.Duration
}

// New creates a search service. embed may be nil when query-time embedding
// is not configured; similarity-by-text then fails with
// domain.ErrEmbeddingUnavailable.
func New(repo Repository, embed domain.Embedder) *Service {
	return &Service{repo: repo, embed: embed, embedTimeout: defaultEmbedTimeout}
}

// WithEmbedTimeout overrides the timeout applied to query-time embedding.
func (s *Service) WithEmbedTimeout(d time.Duration) *Service {
	if d > 0 {
		s.embedTimeout = d
	}
	return s
}

// SearchText runs a case-insensitive substring search over title, abstract,
// and authors. Ties are broken by recency, newest first.
func (s *Service) SearchText(ctx context.Context, req *request.TextRequest) ([]result.Result, error) {
	pred := scoped(predicate.TextContains(req.Query()), req.FolderName(), req.Filters())

	docs, err := s.repo.Scan(ctx, pred)
	if err != nil {
		return nil, fmt.Errorf("scan documents: %w", err)
	}

	results := make([]result.Result, 0, len(docs))
	for _, doc := range docs {
		score, components := textScore(doc, req.Query())
		res := result.New(doc, score, components)
		if req.IncludeSnippet() {
			res = res.WithSnippet(snippet(doc))
		}
		results = append(results, res)
	}

	sortByScoreRecency(results, docs)
	return truncate(results, req.Limit()), nil
}

// SearchKeywords runs the flexible keyword search. Results are ordered by
// match score descending, most recent first on ties.
func (s *Service) SearchKeywords(ctx context.Context, req *request.KeywordRequest) ([]result.Result, error) {
	q := req.Query()
	pred := scoped(predicate.KeywordsMatch(q), req.FolderName(), nil)

	docs, err := s.repo.Scan(ctx, pred)
	if err != nil {
		return nil, fmt.Errorf("scan documents: %w", err)
	}

	results := make([]result.Result, 0, len(docs))
	for _, doc := range docs {
		m, ok := q.Evaluate(doc.Keywords())
		if !ok {
			continue
		}
		components := map[string]float64{
			result.ComponentMatchedKeywords: float64(len(m.MatchedKeywords)),
			result.ComponentTotalKeywords:   float64(len(q.Keywords())),
		}
		res := result.New(doc, m.Score, components).WithMatchedKeywords(m.MatchedKeywords)
		if req.IncludeSnippet() {
			res = res.WithSnippet(snippet(doc))
		}
		results = append(results, res)
	}

	sortByScoreRecency(results, docs)
	return truncate(results, req.Limit()), nil
}

// scoped wraps a matcher predicate with folder scope and equality filters.
func scoped(matcher predicate.Predicate, folderName string, filters []filter.Filter) predicate.Predicate {
	ps := []predicate.Predicate{matcher}
	if folderName != "" {
		ps = append(ps, predicate.FolderEquals(folderName))
	}
	if len(filters) > 0 {
		ps = append(ps, filter.Apply(filters))
	}
	return predicate.And(ps...)
}

// textScore computes the free-text hit score and its component breakdown.
func textScore(doc domdoc.Document, query string) (float64, map[string]float64) {
	needle := strings.ToLower(query)
	var score float64
	if strings.Contains(strings.ToLower(doc.Title()), needle) {
		score += titleHitWeight
	}
	if doc.Abstract() != "" && strings.Contains(strings.ToLower(doc.Abstract()), needle) {
		score += abstractHitWeight
	}
	for _, author := range doc.Authors() {
		if strings.Contains(strings.ToLower(author), needle) {
			score += authorHitWeight
			break
		}
	}
	return score, map[string]float64{result.ComponentTextScore: score}
}

// sortByScoreRecency orders results by score descending, then createdAt
// descending, then ID ascending for determinism. docs supplies the createdAt
// timestamps by ID.
func sortByScoreRecency(results []result.Result, docs []domdoc.Document) {
	createdAt := make(map[string]time.Time, len(docs))
	for _, d := range docs {
		createdAt[d.ID()] = d.CreatedAt()
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score() != results[j].Score() {
			return results[i].Score() > results[j].Score()
		}
		ti, tj := createdAt[results[i].ID()], createdAt[results[j].ID()]
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return results[i].ID() < results[j].ID()
	})
}

func truncate(results []result.Result, limit int) []result.Result {
	if len(results) > limit {
		return results[:limit]
	}
	return results
}

// snippetLength is the maximum abstract snippet size in runes.
const snippetLength = 200

// snippet builds a short abstract excerpt, falling back to the title.
func snippet(doc domdoc.Document) string {
	text := doc.Abstract()
	if text == "" {
		text = doc.Title()
	}
	runes := []rune(text)
	if len(runes) <= snippetLength {
		return text
	}
	return string(runes[:snippetLength]) + "..."
}
