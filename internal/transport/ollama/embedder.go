// Package ollama provides the local embedding and metadata-extraction
// providers backed by an ollama server.
package ollama

import (
	"context"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"

	"github.com/paperdex/paperdex/internal/domain"
	"github.com/paperdex/paperdex/internal/domain/vector"
	"github.com/paperdex/paperdex/internal/metrics"
)

// Embedder implements domain.Embedder against an ollama server.
type Embedder struct {
	embedder   embeddings.Embedder
	model      string
	dimensions int
	logger     *zap.Logger
}

// Config holds the ollama provider settings.
type Config struct {
	BaseURL    string
	Model      string
	Dimensions int
	Logger     *zap.Logger
}

// NewEmbedder creates an ollama embedding provider.
func NewEmbedder(cfg *Config) (*Embedder, error) {
	client, err := ollama.New(
		ollama.WithServerURL(cfg.BaseURL),
		ollama.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, fmt.Errorf("wrap embedder: %w", err)
	}

	return &Embedder{
		embedder:   embedder,
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
		logger:     cfg.Logger,
	}, nil
}

// Embed implements domain.Embedder. Ollama reports no token usage.
func (e *Embedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	start := time.Now()

	vecs, err := e.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues("ollama", e.model, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues("ollama", e.model, "api_error").Inc()
		return domain.EmbeddingResult{}, fmt.Errorf("embed via ollama: %w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	if len(vecs) == 0 || len(vecs[0]) == 0 {
		metrics.EmbeddingRequestsTotal.WithLabelValues("ollama", e.model, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues("ollama", e.model, "empty_response").Inc()
		return domain.EmbeddingResult{}, fmt.Errorf("empty embedding response: %w", domain.ErrEmbeddingUnavailable)
	}

	embedding := vecs[0]
	if e.dimensions > 0 {
		if err := vector.Validate(embedding, e.dimensions); err != nil {
			metrics.EmbeddingRequestsTotal.WithLabelValues("ollama", e.model, "error").Inc()
			metrics.EmbeddingErrorsTotal.WithLabelValues("ollama", e.model, "dim_mismatch").Inc()
			return domain.EmbeddingResult{}, err
		}
	}

	metrics.EmbeddingRequestsTotal.WithLabelValues("ollama", e.model, "success").Inc()
	metrics.EmbeddingRequestDuration.WithLabelValues("ollama", e.model).Observe(time.Since(start).Seconds())

	return domain.EmbeddingResult{Embedding: embedding}, nil
}

// HealthCheck verifies the server answers an embedding round trip.
func (e *Embedder) HealthCheck(ctx context.Context) error {
	if _, err := e.embedder.EmbedDocuments(ctx, []string{"ping"}); err != nil {
		return fmt.Errorf("ollama health check: %w", err)
	}
	return nil
}
