package search

import (
	"context"
	"testing"
	"time"

	"github.com/paperdex/paperdex/internal/domain"
	domdoc "github.com/paperdex/paperdex/internal/domain/document"
	"github.com/paperdex/paperdex/internal/domain/search/keyword"
	"github.com/paperdex/paperdex/internal/domain/search/predicate"
)

// --- Mocks ---

type mockRepo struct {
	docs    []domdoc.Document
	scanErr error
	getErr  error

	scanCalled bool
	lastPred   predicate.Predicate
}

func (m *mockRepo) Scan(_ context.Context, pred predicate.Predicate) ([]domdoc.Document, error) {
	m.scanCalled = true
	m.lastPred = pred
	if m.scanErr != nil {
		return nil, m.scanErr
	}
	if pred == nil {
		return m.docs, nil
	}
	out := make([]domdoc.Document, 0, len(m.docs))
	for _, d := range m.docs {
		if pred.Eval(d) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockRepo) Get(_ context.Context, id string) (domdoc.Document, error) {
	if m.getErr != nil {
		return domdoc.Document{}, m.getErr
	}
	for _, d := range m.docs {
		if d.ID() == id {
			return d, nil
		}
	}
	return domdoc.Document{}, domain.ErrDocumentNotFound
}

type mockEmbedder struct {
	vec    []float32
	err    error
	called bool
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.called = true
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

// --- Fixtures ---

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type docSpec struct {
	id        string
	title     string
	authors   []string
	abstract  string
	keywords  []string
	journal   string
	year      int
	folder    string
	titleVec  []float32
	absVec    []float32
	createdAt time.Time
}

func makeDoc(s docSpec) domdoc.Document {
	createdAt := s.createdAt
	if createdAt.IsZero() {
		createdAt = baseTime
	}
	return domdoc.Reconstruct(
		s.id, s.title, s.authors, s.abstract, s.keywords,
		s.journal, s.year, s.folder,
		domdoc.StatusProcessed, "/papers/"+s.id+".pdf",
		s.titleVec, s.absVec, createdAt,
	)
}

func mustKeywordQuery(t *testing.T, keywords []string, mode keyword.Mode, exact, caseSensitive bool) keyword.Query {
	t.Helper()
	q, err := keyword.NewQuery(keywords, mode, exact, caseSensitive)
	if err != nil {
		t.Fatalf("keyword.NewQuery: %v", err)
	}
	return q
}
