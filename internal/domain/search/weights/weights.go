// Package weights holds the normalized similarity weight pair used by the
// weighted dual-embedding scorer.
package weights

import (
	"fmt"

	"github.com/paperdex/paperdex/internal/domain"
)

// Weights is a validated title/abstract weight pair summing to exactly 1.
type Weights struct {
	title    float64
	abstract float64
}

// New validates and normalizes a raw weight pair so the components sum to 1.
// Negative inputs and the all-zero pair fail with domain.ErrInvalidWeights.
// Normalization is idempotent: feeding an already-normalized pair back in
// returns the same pair.
func New(titleW, abstractW float64) (Weights, error) {
	if titleW < 0 || abstractW < 0 {
		return Weights{}, fmt.Errorf("%w: weights must be non-negative, got (%g, %g)",
			domain.ErrInvalidWeights, titleW, abstractW)
	}
	sum := titleW + abstractW
	if sum == 0 {
		return Weights{}, fmt.Errorf("%w: at least one weight must be positive", domain.ErrInvalidWeights)
	}
	return Weights{title: titleW / sum, abstract: abstractW / sum}, nil
}

// Default returns the 3:1 title-to-abstract weighting.
func Default() Weights {
	return Weights{title: 0.75, abstract: 0.25}
}

// Title returns the normalized title weight.
func (w Weights) Title() float64 { return w.title }

// Abstract returns the normalized abstract weight.
func (w Weights) Abstract() float64 { return w.abstract }

// Blend combines the two similarity components into the primary score.
func (w Weights) Blend(titleSim, abstractSim float64) float64 {
	return w.title*titleSim + w.abstract*abstractSim
}
