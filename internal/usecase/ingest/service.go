// Package ingest scans a directory tree for new PDF papers and turns each one
// into a stored, embedded document.
package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/paperdex/paperdex/internal/domain"
	domdoc "github.com/paperdex/paperdex/internal/domain/document"
)

// Report summarizes one ingestion run.
type Report struct {
	// Found is the number of source files discovered by the scan.
	Found int
	// Skipped is the number already ingested in a previous run.
	Skipped int
	// Processed is the number stored with embeddings this run.
	Processed int
	// Failed is the number that errored at any stage.
	Failed int
}

// Service runs the ingestion pipeline: scan, dedup, then per-file
// convert/extract/embed/persist on a worker pool. Per-file failures are
// logged and counted, never abort the batch.
type Service struct {
	repo      Repository
	converter Converter
	extractor domain.MetadataExtractor
	embedder  domain.Embedder
	baseDir   string
	poolSize  int
	log       *zap.Logger
}

// New creates an ingestion service rooted at baseDir.
func New(
	repo Repository,
	converter Converter,
	extractor domain.MetadataExtractor,
	embedder domain.Embedder,
	baseDir string,
	log *zap.Logger,
) *Service {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	return &Service{
		repo:      repo,
		converter: converter,
		extractor: extractor,
		embedder:  embedder,
		baseDir:   baseDir,
		poolSize:  poolSize,
		log:       log,
	}
}

// WithPoolSize sets the worker pool size. Values below 1 keep the default.
func (s *Service) WithPoolSize(size int) *Service {
	if size >= 1 {
		s.poolSize = size
	}
	return s
}

// Run scans the base directory and processes every file not yet ingested.
func (s *Service) Run(ctx context.Context) (Report, error) {
	scanPaths, err := s.scan()
	if err != nil {
		return Report{}, fmt.Errorf("scan %s: %w", s.baseDir, err)
	}

	known, err := s.repo.SourcePaths(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("load known source paths: %w", err)
	}

	targets := NewTargets(scanPaths, s.baseDir, known)
	report := Report{Found: len(scanPaths), Skipped: len(scanPaths) - len(targets)}
	if len(targets) == 0 {
		return report, nil
	}

	pool, err := ants.NewPool(s.poolSize)
	if err != nil {
		return Report{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		processed int
		failed    int
	)
	for _, target := range targets {
		target := target
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			err := s.processOne(ctx, target)
			mu.Lock()
			if err != nil {
				failed++
			} else {
				processed++
			}
			mu.Unlock()
			if err != nil {
				s.log.Warn("ingest failed",
					zap.String("path", target.Rel),
					zap.Error(err),
				)
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			failed++
			mu.Unlock()
		}
	}
	wg.Wait()

	report.Processed = processed
	report.Failed = failed
	s.log.Info("ingest run complete",
		zap.Int("found", report.Found),
		zap.Int("skipped", report.Skipped),
		zap.Int("processed", report.Processed),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

// scan walks the base directory collecting PDF paths.
func (s *Service) scan() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".pdf") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// processOne runs the full pipeline for a single file. Conversion and
// extraction failures leave no record; an embedding failure persists the
// document in the error state so a later run can retry it by path.
func (s *Service) processOne(ctx context.Context, target Target) error {
	markdown, err := s.converter.Convert(ctx, target.Abs)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	markdown = stripReferences(markdown)

	meta, err := s.extractor.ExtractMetadata(ctx, markdown)
	if err != nil {
		return fmt.Errorf("extract metadata: %w", err)
	}

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(target.Rel), filepath.Ext(target.Rel))
	}

	doc, err := domdoc.New(uuid.NewString(), title, meta.Authors, target.Rel, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("new document: %w", err)
	}
	doc = doc.WithAbstract(meta.Abstract)
	doc = doc.WithKeywords(meta.Keywords)
	doc = doc.WithJournal(meta.JournalName, meta.PublicationYear)
	doc = doc.WithFolder(folderOf(target.Rel))

	titleEmb, abstractEmb, embErr := s.embedPair(ctx, doc)
	if embErr != nil {
		doc = doc.MarkError()
		if saveErr := s.repo.Save(ctx, doc); saveErr != nil {
			return fmt.Errorf("save errored document: %w", saveErr)
		}
		return fmt.Errorf("embed: %w", embErr)
	}

	doc = doc.WithEmbeddings(titleEmb, abstractEmb)
	doc = doc.MarkProcessed()
	if err := s.repo.Save(ctx, doc); err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	s.log.Debug("ingested document",
		zap.String("id", doc.ID()),
		zap.String("path", target.Rel),
	)
	return nil
}

// embedPair embeds the title and, when present, the abstract. A document
// without an abstract reuses the title embedding so similarity queries still
// see both vectors.
func (s *Service) embedPair(ctx context.Context, doc domdoc.Document) ([]float32, []float32, error) {
	titleRes, err := s.embedder.Embed(ctx, doc.Title())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	if doc.Abstract() == "" {
		return titleRes.Embedding, titleRes.Embedding, nil
	}
	absRes, err := s.embedder.Embed(ctx, doc.Abstract())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	return titleRes.Embedding, absRes.Embedding, nil
}

// folderOf derives the flat folder label from the first path element of a
// base-relative source path. Files at the root have no folder.
func folderOf(rel string) string {
	rel = filepath.ToSlash(rel)
	if i := strings.Index(rel, "/"); i > 0 && !strings.HasPrefix(rel, "/") {
		return rel[:i]
	}
	return ""
}
