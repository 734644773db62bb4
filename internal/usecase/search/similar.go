package search

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/paperdex/paperdex/internal/domain"
	domdoc "github.com/paperdex/paperdex/internal/domain/document"
	"github.com/paperdex/paperdex/internal/domain/search/predicate"
	"github.com/paperdex/paperdex/internal/domain/search/request"
	"github.com/paperdex/paperdex/internal/domain/search/result"
	"github.com/paperdex/paperdex/internal/domain/vector"
)

// SearchSimilar ranks documents by weighted cosine similarity of their title
// and abstract embeddings against a reference. Documents missing either
// embedding are never candidates. Ties are broken by ID ascending so that
// pagination over equal scores is stable.
func (s *Service) SearchSimilar(ctx context.Context, req *request.SimilarRequest) ([]result.Result, error) {
	refTitle, refAbstract, excludeID, err := s.referenceVectors(ctx, req)
	if err != nil {
		return nil, err
	}
	if refTitle == nil && refAbstract == nil {
		// Missing or unembedded reference matches nothing.
		return []result.Result{}, nil
	}

	pred := scoped(predicate.HasBothEmbeddings(), req.FolderName(), nil)

	docs, err := s.repo.Scan(ctx, pred)
	if err != nil {
		return nil, fmt.Errorf("scan documents: %w", err)
	}

	w := req.Weights()
	results := make([]result.Result, 0, len(docs))
	for _, doc := range docs {
		if doc.ID() == excludeID {
			continue
		}
		titleSim := vector.Cosine(refTitle, doc.TitleEmbedding())
		abstractSim := vector.Cosine(refAbstract, doc.AbstractEmbedding())
		score := w.Blend(titleSim, abstractSim)
		if score < req.Threshold() {
			continue
		}
		components := map[string]float64{
			result.ComponentTitleSimilarity:    titleSim,
			result.ComponentAbstractSimilarity: abstractSim,
		}
		res := result.New(doc, score, components)
		if req.IncludeSnippet() {
			res = res.WithSnippet(snippet(doc))
		}
		results = append(results, res)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score() != results[j].Score() {
			return results[i].Score() > results[j].Score()
		}
		return results[i].ID() < results[j].ID()
	})
	return truncate(results, req.Limit()), nil
}

// referenceVectors resolves the reference embedding pair from whichever form
// the request carries. The returned excludeID is non-empty only for
// by-document references.
func (s *Service) referenceVectors(ctx context.Context, req *request.SimilarRequest) (refTitle, refAbstract []float32, excludeID string, err error) {
	switch {
	case req.ReferenceID() != "":
		var ref domdoc.Document
		ref, err = s.repo.Get(ctx, req.ReferenceID())
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return nil, nil, "", nil
		}
		if err != nil {
			return nil, nil, "", fmt.Errorf("load reference document: %w", err)
		}
		if !ref.HasEmbeddings() {
			return nil, nil, "", nil
		}
		return ref.TitleEmbedding(), ref.AbstractEmbedding(), ref.ID(), nil

	case req.QueryText() != "":
		var emb []float32
		emb, err = s.embedQuery(ctx, req.QueryText())
		if err != nil {
			return nil, nil, "", err
		}
		// A single query vector serves as both references.
		return emb, emb, "", nil

	default:
		return req.TitleEmbedding(), req.AbstractEmbedding(), "", nil
	}
}

// embedQuery embeds free text with the configured provider under the service
// embed timeout.
func (s *Service) embedQuery(ctx context.Context, text string) ([]float32, error) {
	if s.embed == nil {
		return nil, fmt.Errorf("%w: no embedding provider configured", domain.ErrEmbeddingUnavailable)
	}
	ctx, cancel := context.WithTimeout(ctx, s.embedTimeout)
	defer cancel()

	res, err := s.embed.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	return res.Embedding, nil
}
