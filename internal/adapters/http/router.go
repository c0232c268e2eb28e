// Package httpadapter exposes the document pipeline over HTTP.
package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avshapoval/doc-insights/internal/core/ports"
	"github.com/avshapoval/doc-insights/internal/export"
	"github.com/avshapoval/doc-insights/internal/observability/metrics"
)

const serviceName = "api"

type RouterConfig struct {
	MaxUploadBytes   int64
	RateLimitRPS     float64
	RateLimitBurst   int
	MaxConcurrent    int
	BackpressureWait time.Duration
}

type Router struct {
	uploader  ports.DocumentUploader
	reader    ports.DocumentReader
	remover   ports.DocumentRemover
	dashboard ports.DashboardService
	exporter  *export.Service
	metrics   *metrics.HTTPServerMetrics
	logger    *slog.Logger
	cfg       RouterConfig
}

func NewRouter(
	uploader ports.DocumentUploader,
	reader ports.DocumentReader,
	remover ports.DocumentRemover,
	dashboard ports.DashboardService,
	exporter *export.Service,
	httpMetrics *metrics.HTTPServerMetrics,
	logger *slog.Logger,
	cfg RouterConfig,
) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 32 << 20
	}
	if cfg.MaxConcurrent > 0 && cfg.BackpressureWait <= 0 {
		cfg.BackpressureWait = 200 * time.Millisecond
	}
	return &Router{
		uploader:  uploader,
		reader:    reader,
		remover:   remover,
		dashboard: dashboard,
		exporter:  exporter,
		metrics:   httpMetrics,
		logger:    logger,
		cfg:       cfg,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/documents", rt.documents)
	mux.HandleFunc("/v1/documents/", rt.documentByID)
	mux.HandleFunc("/v1/dashboard", rt.dashboardStats)
	mux.HandleFunc("/v1/dashboard/export", rt.dashboardExport)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.cfg.MaxConcurrent > 0 {
		handler = backpressureMiddleware(handler, rt.cfg.MaxConcurrent, rt.cfg.BackpressureWait)
	}
	if rt.cfg.RateLimitRPS > 0 {
		handler = rateLimitMiddleware(handler, rt.cfg.RateLimitRPS, rt.cfg.RateLimitBurst)
	}
	if rt.metrics != nil {
		handler = metricsMiddleware(handler, rt.metrics, serviceName)
	}
	handler = accessLogMiddleware(handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) documents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.uploadDocument(w, r)
	case http.MethodGet:
		rt.listDocuments(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, rt.cfg.MaxUploadBytes)

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	userID := strings.TrimSpace(r.FormValue("user_id"))
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "form field 'user_id' is required"})
		return
	}

	doc, err := rt.uploader.Upload(
		r.Context(),
		userID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if rt.metrics != nil {
		rt.metrics.ObserveUpload(serviceName, fileHeader.Size, err)
	}
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, doc)
}

func (rt *Router) listDocuments(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter 'user_id' is required"})
		return
	}

	docs, err := rt.reader.ListByUser(r.Context(), userID)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (rt *Router) documentByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		doc, err := rt.reader.GetByID(r.Context(), id)
		if err != nil {
			rt.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	case http.MethodDelete:
		if err := rt.remover.Delete(r.Context(), id); err != nil {
			rt.writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) dashboardStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter 'user_id' is required"})
		return
	}

	stats, err := rt.dashboard.Stats(r.Context(), userID)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (rt *Router) dashboardExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter 'user_id' is required"})
		return
	}

	stats, err := rt.dashboard.Stats(r.Context(), userID)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	workbook, err := rt.exporter.DashboardXLSX(stats)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="dashboard.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(workbook)
}

func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToHTTPStatus(err)
	if status >= 500 {
		rt.logger.Error("request failed",
			"request_id", requestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
