package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"

	"github.com/paperdex/paperdex/internal/domain"
)

const extractorSystemPrompt = `You extract bibliographic metadata from the markdown text of a scholarly paper.
Respond with a single JSON object and nothing else, using exactly these keys:
{"title": string, "authors": [string], "journal_name": string, "publication_year": number, "abstract": string, "keywords": [string]}
Use an empty string, empty list, or 0 when a field cannot be determined. Do not invent values.`

// maxExtractInput bounds the markdown sent to the model. Metadata lives in
// the front matter of a paper, so the head is enough.
const maxExtractInput = 8000

const extractAttempts = 3

// Extractor implements domain.MetadataExtractor with a local LLM.
type Extractor struct {
	client llms.Model
	logger *zap.Logger
}

// NewExtractor creates an ollama-backed metadata extractor.
func NewExtractor(baseURL, model string, logger *zap.Logger) (*Extractor, error) {
	client, err := ollama.New(
		ollama.WithServerURL(baseURL),
		ollama.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}
	return &Extractor{client: client, logger: logger}, nil
}

// metadataPayload matches the JSON shape the prompt requests.
type metadataPayload struct {
	Title           string   `json:"title"`
	Authors         []string `json:"authors"`
	JournalName     string   `json:"journal_name"`
	PublicationYear int      `json:"publication_year"`
	Abstract        string   `json:"abstract"`
	Keywords        []string `json:"keywords"`
}

// ExtractMetadata asks the model for bibliographic metadata. Malformed JSON
// is retried a bounded number of times before failing.
func (e *Extractor) ExtractMetadata(ctx context.Context, markdown string) (domain.DocumentMetadata, error) {
	if len(markdown) > maxExtractInput {
		markdown = markdown[:maxExtractInput]
	}

	content := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(extractorSystemPrompt)},
		},
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(markdown)},
		},
	}

	var payload metadataPayload
	var lastErr error
	for attempt := 0; attempt < extractAttempts; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			return domain.DocumentMetadata{}, fmt.Errorf("generate content: %w", err)
		}
		if len(response.Choices) == 0 {
			return domain.DocumentMetadata{}, fmt.Errorf("no choices returned from model")
		}

		text := stripFences(response.Choices[0].Content)
		if err := json.Unmarshal([]byte(text), &payload); err != nil {
			lastErr = err
			e.logger.Warn("malformed extraction response",
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			continue
		}
		lastErr = nil
		break
	}
	if lastErr != nil {
		return domain.DocumentMetadata{}, fmt.Errorf("parse extraction response: %w", lastErr)
	}

	return domain.DocumentMetadata{
		Title:           strings.TrimSpace(payload.Title),
		Authors:         payload.Authors,
		JournalName:     strings.TrimSpace(payload.JournalName),
		PublicationYear: payload.PublicationYear,
		Abstract:        strings.TrimSpace(payload.Abstract),
		Keywords:        payload.Keywords,
	}, nil
}

// stripFences removes a markdown code fence wrapper if the model added one.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
