// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"github.com/risinglab/jewelpanel/internal/adapter/driving/web/templates"
	vm "github.com/risinglab/jewelpanel/internal/adapter/driving/web/viewmodel"
	"github.com/risinglab/jewelpanel/internal/application"
	"github.com/risinglab/jewelpanel/internal/domain/port/driven"
)

const (
	pageTitle     = "Rising Lab"
	activityLimit = 10
)

// Handler is the web GUI driving adapter that serves HTML via templ components.
type Handler struct {
	auth          *application.AuthService
	workspaces    *application.Workspaces
	catalog       driven.CatalogClient
	audit         driven.MutationLog
	secureCookies bool
	logger        *slog.Logger
	now           func() time.Time
}

// NewHandler creates a Handler with all required dependencies. audit may be nil.
func NewHandler(
	auth *application.AuthService,
	workspaces *application.Workspaces,
	catalog driven.CatalogClient,
	audit driven.MutationLog,
	secureCookies bool,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		auth:          auth,
		workspaces:    workspaces,
		catalog:       catalog,
		audit:         audit,
		secureCookies: secureCookies,
		logger:        logger,
		now:           time.Now,
	}
}

// Dashboard renders the catalog dashboard with the full HTML layout.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())
	csrf := h.csrfToken(w, r)

	page := vm.DashboardViewModel{
		PageViewModel: vm.PageViewModel{Title: pageTitle, CSRFToken: csrf},
		User:          toUserViewModel(ws.Session),
		List:          h.listViewModel(r),
		Activity:      h.activity(r),
		Menu:          toMenuViewModel(ws.Session, ws.Menu.Snapshot(), csrf),
		Dialog:        h.dialogViewModel(ws, csrf, 0),
		NewPath:       jewelleryBasePath + "/new",
		ListPath:      jewelleryBasePath,
	}

	h.render(w, r, templates.Dashboard(page))
}

// JewelleryList renders the catalog table fragment.
func (h *Handler) JewelleryList(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, templates.JewelleryList(h.listViewModel(r)))
}

func (h *Handler) listViewModel(r *http.Request) vm.JewelleryListViewModel {
	items, err := h.catalog.ListJewellery(r.Context())
	if err != nil {
		h.logger.Error("failed to list jewellery", "error", err)
		return vm.JewelleryListViewModel{Error: "Could not load the catalog."}
	}
	return toJewelleryListViewModel(items)
}

func (h *Handler) activity(r *http.Request) []vm.ActivityViewModel {
	if h.audit == nil {
		return nil
	}
	recs, err := h.audit.ListRecent(r.Context(), activityLimit)
	if err != nil {
		h.logger.Error("failed to list activity", "error", err)
		return nil
	}
	return toActivityViewModels(recs, h.now())
}

// render writes c as the response body.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	h.renderStatus(w, r, http.StatusOK, c)
}

func (h *Handler) renderStatus(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render component", "path", r.URL.Path, "error", err)
	}
}
