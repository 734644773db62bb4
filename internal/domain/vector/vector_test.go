package vector

import (
	"errors"
	"math"
	"testing"

	"github.com/paperdex/paperdex/internal/domain"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0}, []float32{1, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"scaled", []float32{2, 0}, []float32{5, 0}, 1},
		{"dim mismatch", []float32{1, 0}, []float32{1, 0, 0}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cosine(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Cosine = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestCosine_Range(t *testing.T) {
	a := []float32{0.3, -0.7, 0.2}
	b := []float32{-0.5, 0.1, 0.9}
	got := Cosine(a, b)
	if got < -1-1e-9 || got > 1+1e-9 {
		t.Errorf("Cosine out of [-1, 1]: %g", got)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate([]float32{1, 2, 3}, 3); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := Validate([]float32{1, 2}, 3); !errors.Is(err, domain.ErrVectorDimMismatch) {
		t.Errorf("expected ErrVectorDimMismatch, got %v", err)
	}
	if err := Validate([]float32{1, float32(math.NaN())}, 2); err == nil {
		t.Error("expected error for NaN component")
	}
	if err := Validate([]float32{float32(math.Inf(1)), 0}, 2); err == nil {
		t.Error("expected error for Inf component")
	}
}
