package request

import (
	"fmt"
	"strings"

	"github.com/paperdex/paperdex/internal/domain"
	"github.com/paperdex/paperdex/internal/domain/search/weights"
)

// Similarity search parameter limits.
const (
	DefaultSimilarLimit = 10
	MaxSimilarLimit     = 50
	// DefaultThreshold is the minimum blended similarity kept by default.
	DefaultThreshold = 0.7
)

// SimilarRequest is a validated weighted dual-embedding similarity query.
// The reference is either an existing document (referenceID), a free-text
// query to embed at search time (queryText), or an explicit embedding pair.
type SimilarRequest struct {
	referenceID       string
	queryText         string
	titleEmbedding    []float32
	abstractEmbedding []float32
	w                 weights.Weights
	threshold         float64
	limit             int
	folderName        string
	includeSnippet    bool
}

// NewSimilarByID validates a similarity query against a stored reference
// document. The reference itself is always excluded from the results. Raw
// weights are normalized here, once, to sum to 1.
func NewSimilarByID(
	referenceID string,
	titleW, abstractW, threshold float64,
	limit int,
	folderName string,
	includeSnippet bool,
) (SimilarRequest, error) {
	if referenceID == "" {
		return SimilarRequest{}, fmt.Errorf("%w: reference document ID is required", domain.ErrInvalidQuery)
	}
	base, err := newSimilar(titleW, abstractW, threshold, limit, folderName, includeSnippet)
	if err != nil {
		return SimilarRequest{}, err
	}
	base.referenceID = referenceID
	return base, nil
}

// NewSimilarByText validates a similarity query whose reference embeddings
// are derived from free text at search time.
func NewSimilarByText(
	queryText string,
	titleW, abstractW, threshold float64,
	limit int,
	folderName string,
	includeSnippet bool,
) (SimilarRequest, error) {
	queryText = strings.TrimSpace(queryText)
	if queryText == "" {
		return SimilarRequest{}, fmt.Errorf("%w: query text is required", domain.ErrInvalidQuery)
	}
	base, err := newSimilar(titleW, abstractW, threshold, limit, folderName, includeSnippet)
	if err != nil {
		return SimilarRequest{}, err
	}
	base.queryText = queryText
	return base, nil
}

// NewSimilarByVectors validates a similarity query with an explicit
// reference embedding pair.
func NewSimilarByVectors(
	titleEmbedding, abstractEmbedding []float32,
	titleW, abstractW, threshold float64,
	limit int,
	folderName string,
	includeSnippet bool,
) (SimilarRequest, error) {
	if len(titleEmbedding) == 0 || len(abstractEmbedding) == 0 {
		return SimilarRequest{}, fmt.Errorf("%w: both reference embeddings are required", domain.ErrInvalidQuery)
	}
	base, err := newSimilar(titleW, abstractW, threshold, limit, folderName, includeSnippet)
	if err != nil {
		return SimilarRequest{}, err
	}
	base.titleEmbedding = titleEmbedding
	base.abstractEmbedding = abstractEmbedding
	return base, nil
}

func newSimilar(
	titleW, abstractW, threshold float64,
	limit int,
	folderName string,
	includeSnippet bool,
) (SimilarRequest, error) {
	w, err := weights.New(titleW, abstractW)
	if err != nil {
		return SimilarRequest{}, err
	}
	if threshold < 0 || threshold > 1 {
		return SimilarRequest{}, fmt.Errorf("%w: threshold must be between 0 and 1", domain.ErrInvalidQuery)
	}
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}
	if limit > MaxSimilarLimit {
		limit = MaxSimilarLimit
	}
	return SimilarRequest{
		w:              w,
		threshold:      threshold,
		limit:          limit,
		folderName:     folderName,
		includeSnippet: includeSnippet,
	}, nil
}

// ReferenceID returns the reference document ID ("" when the reference is
// text or an explicit pair).
func (r *SimilarRequest) ReferenceID() string { return r.referenceID }

// QueryText returns the free-text reference ("" when absent).
func (r *SimilarRequest) QueryText() string { return r.queryText }

// TitleEmbedding returns the explicit title reference vector (nil when absent).
func (r *SimilarRequest) TitleEmbedding() []float32 { return r.titleEmbedding }

// AbstractEmbedding returns the explicit abstract reference vector (nil when absent).
func (r *SimilarRequest) AbstractEmbedding() []float32 { return r.abstractEmbedding }

// Weights returns the normalized similarity weights.
func (r *SimilarRequest) Weights() weights.Weights { return r.w }

// Threshold returns the minimum blended score kept.
func (r *SimilarRequest) Threshold() float64 { return r.threshold }

// Limit returns the maximum results to return.
func (r *SimilarRequest) Limit() int { return r.limit }

// FolderName returns the folder scope ("" for unscoped).
func (r *SimilarRequest) FolderName() string { return r.folderName }

// IncludeSnippet reports whether results should carry an abstract snippet.
func (r *SimilarRequest) IncludeSnippet() bool { return r.includeSnippet }
