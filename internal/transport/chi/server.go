package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/paperdex/paperdex/internal/domain"
	"github.com/paperdex/paperdex/internal/domain/search/keyword"
	"github.com/paperdex/paperdex/internal/domain/search/request"
	logpkg "github.com/paperdex/paperdex/internal/logger"
	"github.com/paperdex/paperdex/internal/metrics"
	documentuc "github.com/paperdex/paperdex/internal/usecase/document"
	healthuc "github.com/paperdex/paperdex/internal/usecase/health"
	searchuc "github.com/paperdex/paperdex/internal/usecase/search"
)

// Default similarity parameters applied when the query string omits them.
const (
	defaultTitleWeight    = 0.75
	defaultAbstractWeight = 0.25
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the document catalog and the four search families over HTTP.
type Server struct {
	documents     *documentuc.Service
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	documents *documentuc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		documents: documents,
		search:    search,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidWeights, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrVectorDimMismatch, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, codeDocumentNotFound),
		sentinelHandler(domain.ErrEmbeddingUnavailable, http.StatusBadGateway, codeEmbeddingUnavailable),
	}
	return s
}

// Router assembles the chi router with the full middleware stack.
// apiKeys enables bearer auth when non-empty.
func (s *Server) Router(apiKeys []string) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(recoverer(s.logger))
	r.Use(metrics.Middleware())
	r.Use(BearerAuthMiddleware(apiKeys))

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/documents", func(r chi.Router) {
		r.Get("/", s.ListDocuments)
		r.Get("/search", s.SearchText)
		r.Get("/search/keywords", s.SearchKeywords)
		r.Get("/search/combined", s.SearchCombined)
		r.Get("/folders", s.ListFolders)
		r.Get("/status", s.StatusCounts)
		r.Get("/{id}", s.GetDocument)
		r.Delete("/{id}", s.DeleteDocument)
		r.Get("/{id}/similar", s.SearchSimilar)
	})

	return r
}

// ListDocuments handles GET /api/documents.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	filters, err := filtersFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}
	offset, err := intQuery(r, "offset", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	limit, err := intQuery(r, "limit", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	page, err := s.documents.List(r.Context(), r.URL.Query().Get("folder"), filters, offset, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]documentResponse, len(page.Documents))
	for i := range page.Documents {
		items[i] = documentToResponse(&page.Documents[i])
	}
	writeJSON(w, http.StatusOK, documentListResponse{
		Items:  items,
		Total:  page.Total,
		Offset: page.Offset,
		Limit:  page.Limit,
	})
}

// GetDocument handles GET /api/documents/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.documents.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, documentToResponse(&doc))
}

// DeleteDocument handles DELETE /api/documents/{id}.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.documents.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListFolders handles GET /api/documents/folders.
func (s *Server) ListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := s.documents.Folders(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, foldersResponse{Folders: folders})
}

// StatusCounts handles GET /api/documents/status.
func (s *Server) StatusCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := s.documents.Status(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{
		Pending:   counts.Pending,
		Processed: counts.Processed,
		Error:     counts.Error,
		Total:     counts.Total,
	})
}

// SearchText handles GET /api/documents/search.
func (s *Server) SearchText(w http.ResponseWriter, r *http.Request) {
	filters, err := filtersFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}
	limit, err := intQuery(r, "limit", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	req, err := request.NewText(
		r.URL.Query().Get("q"),
		r.URL.Query().Get("folder"),
		filters,
		limit,
		boolQuery(r, "include_snippet"),
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results, err := s.search.SearchText(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResultsToResponse(results))
}

// SearchKeywords handles GET /api/documents/search/keywords.
func (s *Server) SearchKeywords(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	q, err := keyword.NewQuery(
		splitKeywords(r.URL.Query().Get("keywords")),
		keyword.Mode(r.URL.Query().Get("mode")),
		boolQuery(r, "exact"),
		boolQuery(r, "case_sensitive"),
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	req, err := request.NewKeyword(q, r.URL.Query().Get("folder"), limit, boolQuery(r, "include_snippet"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results, err := s.search.SearchKeywords(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResultsToResponse(results))
}

// SearchCombined handles GET /api/documents/search/combined.
func (s *Server) SearchCombined(w http.ResponseWriter, r *http.Request) {
	filters, err := filtersFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}
	limit, err := intQuery(r, "limit", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	var keywordQuery *keyword.Query
	if keywords := splitKeywords(r.URL.Query().Get("keywords")); len(keywords) > 0 {
		q, err := keyword.NewQuery(
			keywords,
			keyword.Mode(r.URL.Query().Get("mode")),
			boolQuery(r, "exact"),
			boolQuery(r, "case_sensitive"),
		)
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
		keywordQuery = &q
	}

	req, err := request.NewCombined(
		r.URL.Query().Get("q"),
		keywordQuery,
		r.URL.Query().Get("folder"),
		filters,
		limit,
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results, err := s.search.SearchCombined(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResultsToResponse(results))
}

// SearchSimilar handles GET /api/documents/{id}/similar.
func (s *Server) SearchSimilar(w http.ResponseWriter, r *http.Request) {
	titleW, err := floatQuery(r, "title_weight", defaultTitleWeight)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	abstractW, err := floatQuery(r, "abstract_weight", defaultAbstractWeight)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	threshold, err := floatQuery(r, "threshold", request.DefaultThreshold)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	limit, err := intQuery(r, "limit", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	req, err := request.NewSimilarByID(
		chi.URLParam(r, "id"),
		titleW, abstractW, threshold,
		limit,
		r.URL.Query().Get("folder"),
		boolQuery(r, "include_snippet"),
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results, err := s.search.SearchSimilar(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResultsToResponse(results))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status:  string(report.Status),
		Checks:  checks,
		Details: report.Details,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// splitKeywords parses the comma-separated keywords parameter.
func splitKeywords(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keywords = append(keywords, p)
		}
	}
	return keywords
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrInvalidWeights,
		domain.ErrVectorDimMismatch,
		domain.ErrDocumentNotFound,
		domain.ErrEmbeddingUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

// requestLogger emits a canonical log line per request and propagates X-Request-ID.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := middleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}

// recoverer converts panics into JSON 500 responses.
func recoverer(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rec),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
