package keyword

import (
	"errors"
	"testing"

	"github.com/paperdex/paperdex/internal/domain"
)

func mustQuery(t *testing.T, keywords []string, mode Mode, exact, caseSensitive bool) Query {
	t.Helper()
	q, err := NewQuery(keywords, mode, exact, caseSensitive)
	if err != nil {
		t.Fatalf("NewQuery: %v", err)
	}
	return q
}

func TestNewQuery_Normalization(t *testing.T) {
	q := mustQuery(t, []string{" ML ", "", "Deep Learning"}, Any, false, false)
	kws := q.Keywords()
	if len(kws) != 2 || kws[0] != "ml" || kws[1] != "deep learning" {
		t.Errorf("keywords = %v", kws)
	}
}

func TestNewQuery_CaseSensitiveKeepsCase(t *testing.T) {
	q := mustQuery(t, []string{"ML"}, Any, false, true)
	if q.Keywords()[0] != "ML" {
		t.Errorf("keywords = %v, want case preserved", q.Keywords())
	}
}

func TestNewQuery_EmptyFails(t *testing.T) {
	if _, err := NewQuery([]string{"  ", ""}, Any, false, false); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestNewQuery_DefaultsToAny(t *testing.T) {
	q := mustQuery(t, []string{"ml"}, "", false, false)
	if q.Mode() != Any {
		t.Errorf("mode = %s, want any", q.Mode())
	}
}

func TestNewQuery_InvalidMode(t *testing.T) {
	if _, err := NewQuery([]string{"ml"}, Mode("most"), false, false); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestEvaluate_ModeAllScenario(t *testing.T) {
	q := mustQuery(t, []string{"ml", "ai"}, All, true, false)

	// D1 carries both keywords.
	m, ok := q.Evaluate([]string{"ml", "ai"})
	if !ok {
		t.Fatal("expected D1 selected")
	}
	if m.Score != 1.0 {
		t.Errorf("score = %g, want 1.0", m.Score)
	}

	// D2 misses "ai".
	if _, ok := q.Evaluate([]string{"ml"}); ok {
		t.Error("expected D2 excluded under mode=all")
	}

	// D3 has no keywords at all.
	if _, ok := q.Evaluate(nil); ok {
		t.Error("expected D3 excluded")
	}
}

func TestEvaluate_ModeAnyPartial(t *testing.T) {
	q := mustQuery(t, []string{"ml", "ai"}, Any, true, false)

	m, ok := q.Evaluate([]string{"ml", "stats"})
	if !ok {
		t.Fatal("expected selection under mode=any")
	}
	if m.Score != 0.5 {
		t.Errorf("score = %g, want 0.5", m.Score)
	}
	if len(m.MatchedKeywords) != 1 || m.MatchedKeywords[0] != "ml" {
		t.Errorf("matched = %v, want [ml]", m.MatchedKeywords)
	}

	if _, ok := q.Evaluate([]string{"bio"}); ok {
		t.Error("expected zero-match document excluded even under mode=any")
	}
}

func TestEvaluate_ExactVersusFuzzy(t *testing.T) {
	exact := mustQuery(t, []string{"learn"}, Any, true, false)
	if _, ok := exact.Evaluate([]string{"learning"}); ok {
		t.Error("exact mode must not substring-match")
	}

	fuzzy := mustQuery(t, []string{"learn"}, Any, false, false)
	if _, ok := fuzzy.Evaluate([]string{"learning"}); !ok {
		t.Error("fuzzy mode must substring-match")
	}
}

func TestEvaluate_CaseSensitivity(t *testing.T) {
	insensitive := mustQuery(t, []string{"ml"}, Any, true, false)
	if _, ok := insensitive.Evaluate([]string{"ML"}); !ok {
		t.Error("case-insensitive query must match upper-case document keyword")
	}

	sensitive := mustQuery(t, []string{"ml"}, Any, true, true)
	if _, ok := sensitive.Evaluate([]string{"ML"}); ok {
		t.Error("case-sensitive query must not match upper-case document keyword")
	}
}

func TestEvaluate_MatchedKeywordsDedupedInDocumentOrder(t *testing.T) {
	q := mustQuery(t, []string{"net"}, Any, false, false)
	m, ok := q.Evaluate([]string{"networks", "subnet", "networks"})
	if !ok {
		t.Fatal("expected selection")
	}
	if len(m.MatchedKeywords) != 2 || m.MatchedKeywords[0] != "networks" || m.MatchedKeywords[1] != "subnet" {
		t.Errorf("matched = %v, want [networks subnet]", m.MatchedKeywords)
	}
}

func TestEvaluate_DuplicateQueryKeywordsCountOnce(t *testing.T) {
	q := mustQuery(t, []string{"ml", "ml"}, All, true, false)
	m, ok := q.Evaluate([]string{"ml"})
	if !ok {
		t.Fatal("expected selection")
	}
	if m.Score != 1.0 {
		t.Errorf("score = %g, want 1.0 with duplicate query keywords", m.Score)
	}
}
