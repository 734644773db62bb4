// Package markitdown calls an external PDF-to-markdown conversion service.
package markitdown

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 120 * time.Second

// Converter converts PDF files to markdown via the conversion service's
// /convert endpoint.
type Converter struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// Config holds the conversion service settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  *zap.Logger
}

// New creates a conversion client.
func New(cfg *Config) *Converter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type convertResponse struct {
	Markdown string `json:"markdown"`
}

// Convert uploads the file at path and returns the markdown rendition.
func (c *Converter) Convert(ctx context.Context, path string) (string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/convert", &body)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("convert %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("convert %s: service returned %d: %s", path, resp.StatusCode, detail)
	}

	var out convertResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode conversion response: %w", err)
	}

	c.logger.Debug("converted document",
		zap.String("path", path),
		zap.Int("markdown_bytes", len(out.Markdown)),
		zap.Duration("duration", time.Since(start)),
	)
	return out.Markdown, nil
}
