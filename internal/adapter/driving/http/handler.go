package httphandler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/risinglab/jewelpanel/internal/application"
	"github.com/risinglab/jewelpanel/internal/domain/model"
	"github.com/risinglab/jewelpanel/internal/domain/port/driven"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

// Authenticator verifies a session token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (model.Session, error)
}

// Handler is the HTTP driving adapter that serves the JSON API.
type Handler struct {
	categories *application.CategoryService
	audit      driven.MutationLog
	auth       Authenticator
	logger     *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	categories *application.CategoryService,
	audit driven.MutationLog,
	auth Authenticator,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		categories: categories,
		audit:      audit,
		auth:       auth,
		logger:     logger,
	}
}

// RegisterAPIRoutes registers the JSON API and the metrics endpoint on mux.
// Health and metrics stay open for health checks and scrapers. Catalog data
// needs a session.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler, metrics *Metrics) {
	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.HandleFunc("GET /api/v1/categories", h.requireSession(h.ListCategories))
	mux.HandleFunc("GET /api/v1/activity", h.requireSession(h.ListActivity))
	mux.Handle("GET /metrics", metrics.Handler())
}

// ListCategories returns the jewellery categories offered by the dialog.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.Load(r.Context(), application.NewStore())
	if err != nil {
		h.logger.Error("failed to list categories", "error", err)
		writeError(w, http.StatusBadGateway, "catalog api unavailable")
		return
	}

	resp := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, CategoryResponse{ID: c.ID, Name: c.Name})
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListActivity returns the most recent catalog mutations, newest first.
func (h *Handler) ListActivity(w http.ResponseWriter, r *http.Request) {
	limit := defaultActivityLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = min(n, maxActivityLimit)
	}

	records, err := h.audit.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list activity", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]ActivityResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, toActivityResponse(rec))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
