package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/paperdex/paperdex/internal/domain"
	domdoc "github.com/paperdex/paperdex/internal/domain/document"
)

type mockRepo struct {
	mu    sync.Mutex
	saved []domdoc.Document
	known []string
}

func (m *mockRepo) Save(_ context.Context, doc domdoc.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, doc)
	return nil
}

func (m *mockRepo) SourcePaths(_ context.Context) ([]string, error) {
	return m.known, nil
}

type mockConverter struct {
	markdown string
	err      error
}

func (m *mockConverter) Convert(_ context.Context, _ string) (string, error) {
	return m.markdown, m.err
}

type mockExtractor struct {
	meta domain.DocumentMetadata
	err  error
}

func (m *mockExtractor) ExtractMetadata(_ context.Context, _ string) (domain.DocumentMetadata, error) {
	return m.meta, m.err
}

type mockEmbedder struct {
	vec []float32
	err error
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

func writePDF(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func testService(repo *mockRepo, conv *mockConverter, ext *mockExtractor, emb *mockEmbedder, baseDir string) *Service {
	return New(repo, conv, ext, emb, baseDir, zap.NewNop()).WithPoolSize(2)
}

func TestRun_ProcessesNewFiles(t *testing.T) {
	dir := t.TempDir()
	writePDF(t, dir, filepath.Join("ml", "paper.pdf"))
	writePDF(t, dir, "root.pdf")

	repo := &mockRepo{}
	conv := &mockConverter{markdown: "# Title\n\nBody\n\n## References\n[1] Old"}
	ext := &mockExtractor{meta: domain.DocumentMetadata{
		Title:    "Attention Is All You Need",
		Authors:  []string{"Vaswani"},
		Abstract: "We propose the transformer.",
		Keywords: []string{"attention"},
	}}
	emb := &mockEmbedder{vec: []float32{0.1, 0.2}}

	report, err := testService(repo, conv, ext, emb, dir).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Found != 2 || report.Processed != 2 || report.Failed != 0 || report.Skipped != 0 {
		t.Fatalf("report = %+v", report)
	}
	if len(repo.saved) != 2 {
		t.Fatalf("expected 2 saved documents, got %d", len(repo.saved))
	}
	for _, doc := range repo.saved {
		if doc.Status() != domdoc.StatusProcessed {
			t.Errorf("doc %s status = %s, want processed", doc.SourcePath(), doc.Status())
		}
		if !doc.HasEmbeddings() {
			t.Errorf("doc %s missing embeddings", doc.SourcePath())
		}
		if doc.Title() != "Attention Is All You Need" {
			t.Errorf("doc title = %s", doc.Title())
		}
	}
}

func TestRun_FolderFromFirstPathElement(t *testing.T) {
	dir := t.TempDir()
	writePDF(t, dir, filepath.Join("nlp", "deep", "paper.pdf"))

	repo := &mockRepo{}
	conv := &mockConverter{markdown: "body"}
	ext := &mockExtractor{meta: domain.DocumentMetadata{Title: "T"}}
	emb := &mockEmbedder{vec: []float32{1}}

	if _, err := testService(repo, conv, ext, emb, dir).Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("expected 1 saved document, got %d", len(repo.saved))
	}
	if got := repo.saved[0].FolderName(); got != "nlp" {
		t.Errorf("folder = %s, want nlp", got)
	}
}

func TestRun_SkipsKnownPaths(t *testing.T) {
	dir := t.TempDir()
	writePDF(t, dir, "a.pdf")
	writePDF(t, dir, "b.pdf")

	repo := &mockRepo{known: []string{"a.pdf"}}
	conv := &mockConverter{markdown: "body"}
	ext := &mockExtractor{meta: domain.DocumentMetadata{Title: "T"}}
	emb := &mockEmbedder{vec: []float32{1}}

	report, err := testService(repo, conv, ext, emb, dir).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Found != 2 || report.Skipped != 1 || report.Processed != 1 {
		t.Fatalf("report = %+v", report)
	}
}

func TestRun_ConvertFailureCountsNotAborts(t *testing.T) {
	dir := t.TempDir()
	writePDF(t, dir, "bad.pdf")

	repo := &mockRepo{}
	conv := &mockConverter{err: errors.New("corrupt file")}
	ext := &mockExtractor{meta: domain.DocumentMetadata{Title: "T"}}
	emb := &mockEmbedder{vec: []float32{1}}

	report, err := testService(repo, conv, ext, emb, dir).Run(context.Background())
	if err != nil {
		t.Fatalf("run must not fail on a per-file error: %v", err)
	}
	if report.Failed != 1 || report.Processed != 0 {
		t.Fatalf("report = %+v", report)
	}
	if len(repo.saved) != 0 {
		t.Fatalf("conversion failure must leave no record, got %d", len(repo.saved))
	}
}

func TestRun_EmbedFailurePersistsErrorState(t *testing.T) {
	dir := t.TempDir()
	writePDF(t, dir, "a.pdf")

	repo := &mockRepo{}
	conv := &mockConverter{markdown: "body"}
	ext := &mockExtractor{meta: domain.DocumentMetadata{Title: "T"}}
	emb := &mockEmbedder{err: errors.New("provider down")}

	report, err := testService(repo, conv, ext, emb, dir).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Failed != 1 {
		t.Fatalf("report = %+v", report)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("embed failure must persist an error record, got %d", len(repo.saved))
	}
	if repo.saved[0].Status() != domdoc.StatusError {
		t.Errorf("status = %s, want error", repo.saved[0].Status())
	}
}

func TestRun_FallsBackToFilenameTitle(t *testing.T) {
	dir := t.TempDir()
	writePDF(t, dir, "untitled-draft.pdf")

	repo := &mockRepo{}
	conv := &mockConverter{markdown: "body"}
	ext := &mockExtractor{meta: domain.DocumentMetadata{}}
	emb := &mockEmbedder{vec: []float32{1}}

	if _, err := testService(repo, conv, ext, emb, dir).Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.saved) != 1 || repo.saved[0].Title() != "untitled-draft" {
		t.Fatalf("expected filename fallback title, got %+v", repo.saved)
	}
}
