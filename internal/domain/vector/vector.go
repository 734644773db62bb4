// Package vector holds the embedding math shared by the similarity scorer
// and the ingestion pipeline.
package vector

import (
	"fmt"
	"math"

	"github.com/paperdex/paperdex/internal/domain"
)

// Cosine returns the cosine similarity between two vectors in [-1, 1].
// Mismatched dimensions or a zero-magnitude vector yield 0.
//
// Similarity scores throughout the engine are raw cosine (equivalently
// 1 - cosine_distance); they are never re-biased into [0, 1].
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Validate checks that v has exactly dim finite components.
func Validate(v []float32, dim int) error {
	if len(v) != dim {
		return fmt.Errorf("%w: got %d components, want %d", domain.ErrVectorDimMismatch, len(v), dim)
	}
	for i, c := range v {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("non-finite component at index %d", i)
		}
	}
	return nil
}
