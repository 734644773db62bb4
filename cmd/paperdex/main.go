package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/paperdex/paperdex/internal/config"
	dbRedis "github.com/paperdex/paperdex/internal/db/redis"
	"github.com/paperdex/paperdex/internal/domain"
	logpkg "github.com/paperdex/paperdex/internal/logger"
	"github.com/paperdex/paperdex/internal/metrics"
	documentrepo "github.com/paperdex/paperdex/internal/repository/document"
	chiTransport "github.com/paperdex/paperdex/internal/transport/chi"
	"github.com/paperdex/paperdex/internal/transport/markitdown"
	ollamaTransport "github.com/paperdex/paperdex/internal/transport/ollama"
	openaiEmb "github.com/paperdex/paperdex/internal/transport/openai"
	documentuc "github.com/paperdex/paperdex/internal/usecase/document"
	healthuc "github.com/paperdex/paperdex/internal/usecase/health"
	ingestuc "github.com/paperdex/paperdex/internal/usecase/ingest"
	searchuc "github.com/paperdex/paperdex/internal/usecase/search"
	"github.com/paperdex/paperdex/internal/version"
)

func main() {
	ingestDir := flag.String("ingest", "", "ingest PDFs from this directory instead of serving")
	flag.Parse()

	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting paperdex",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterEmbeddingMetrics()

	embedder, err := buildEmbedder(cfg.Embedding, logger)
	if err != nil {
		logger.Fatal("Failed to create embedder", zap.Error(err))
	}
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	docRepo := documentrepo.New(store).WithKeyPrefix(cfg.Storage.KeyPrefix)

	if *ingestDir != "" {
		runIngest(ctx, cfg, docRepo, embedder, *ingestDir, logger)
		return
	}

	docSvc := documentuc.New(docRepo).
		WithPagination(cfg.Pagination.DefaultPageSize, cfg.Pagination.MaxPageSize)
	searchSvc := searchuc.New(docRepo, embedder).
		WithEmbedTimeout(time.Duration(cfg.Embedding.TimeoutSec) * time.Second)
	healthSvc := healthuc.New(store, newEmbeddingHealthChecker(embedder))

	server := chiTransport.NewServer(docSvc, searchSvc, healthSvc, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(cfg.Auth.APIKeys),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// runIngest scans baseDir and ingests every PDF not yet in the catalog.
func runIngest(
	ctx context.Context,
	cfg config.Config,
	repo *documentrepo.Repo,
	embedder domain.Embedder,
	baseDir string,
	logger *zap.Logger,
) {
	converter := markitdown.New(&markitdown.Config{
		BaseURL: cfg.Converter.BaseURL,
		Timeout: time.Duration(cfg.Converter.TimeoutSec) * time.Second,
		Logger:  logger,
	})

	extractor, err := ollamaTransport.NewExtractor(cfg.Extractor.BaseURL, cfg.Extractor.Model, logger)
	if err != nil {
		logger.Fatal("Failed to create metadata extractor", zap.Error(err))
	}

	svc := ingestuc.New(repo, converter, extractor, embedder, baseDir, logger).
		WithPoolSize(cfg.Ingest.Workers)

	report, err := svc.Run(ctx)
	if err != nil {
		logger.Fatal("Ingestion failed", zap.Error(err))
	}
	logger.Info("Ingestion finished",
		zap.Int("found", report.Found),
		zap.Int("skipped", report.Skipped),
		zap.Int("processed", report.Processed),
		zap.Int("failed", report.Failed),
	)
}

// buildEmbedder selects the embedding provider from config.
func buildEmbedder(cfg config.EmbeddingConfig, logger *zap.Logger) (domain.Embedder, error) {
	switch cfg.Provider {
	case "openai":
		return openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
			Logger:     logger,
		}), nil
	case "ollama":
		return ollamaTransport.NewEmbedder(&ollamaTransport.Config{
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
			Logger:     logger,
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}

// embeddingHealthChecker wraps domain.Embedder to implement health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}
