package search

import (
	"context"
	"fmt"

	"github.com/paperdex/paperdex/internal/domain/search/predicate"
	"github.com/paperdex/paperdex/internal/domain/search/request"
	"github.com/paperdex/paperdex/internal/domain/search/result"
)

// bothMatchBonus is added when the text and keyword components are both
// positive. Components live in [0,1], so a single-component score never
// exceeds 0.5 and any document matching both outranks any document
// matching one.
const bothMatchBonus = 0.5

// SearchCombined runs the hybrid query: a document matches when it satisfies
// the text predicate OR the keyword predicate, and every equality filter. The
// composite score halves each component and adds bothMatchBonus when both
// hit.
func (s *Service) SearchCombined(ctx context.Context, req *request.CombinedRequest) ([]result.Result, error) {
	matchers := make([]predicate.Predicate, 0, 2)
	if req.TextQuery() != "" {
		matchers = append(matchers, predicate.TextContains(req.TextQuery()))
	}
	if q := req.KeywordQuery(); q != nil {
		matchers = append(matchers, predicate.KeywordsMatch(*q))
	}
	pred := scoped(predicate.Or(matchers...), req.FolderName(), req.Filters())

	docs, err := s.repo.Scan(ctx, pred)
	if err != nil {
		return nil, fmt.Errorf("scan documents: %w", err)
	}

	results := make([]result.Result, 0, len(docs))
	for _, doc := range docs {
		var textComponent, keywordComponent float64
		var matched []string

		if req.TextQuery() != "" {
			textComponent, _ = textScore(doc, req.TextQuery())
		}
		if q := req.KeywordQuery(); q != nil {
			if m, ok := q.Evaluate(doc.Keywords()); ok {
				keywordComponent = m.Score
				matched = m.MatchedKeywords
			}
		}

		score := 0.5*textComponent + 0.5*keywordComponent
		if textComponent > 0 && keywordComponent > 0 {
			score += bothMatchBonus
		}
		components := map[string]float64{
			result.ComponentTextScore:    textComponent,
			result.ComponentKeywordScore: keywordComponent,
		}
		res := result.New(doc, score, components)
		if len(matched) > 0 {
			res = res.WithMatchedKeywords(matched)
		}
		results = append(results, res)
	}

	sortByScoreRecency(results, docs)
	return truncate(results, req.Limit()), nil
}
