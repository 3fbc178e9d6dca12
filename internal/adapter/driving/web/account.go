package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/risinglab/jewelpanel/internal/adapter/driving/web/templates"
	"github.com/risinglab/jewelpanel/internal/application"
)

func (h *Handler) renderMenu(w http.ResponseWriter, r *http.Request, ws *application.Workspace) {
	h.render(w, r, templates.AccountMenu(toMenuViewModel(ws.Session, ws.Menu.Snapshot(), h.csrfToken(w, r))))
}

// ToggleMenu opens or closes the account dropdown.
func (h *Handler) ToggleMenu(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())
	ws.Menu.Toggle()
	h.renderMenu(w, r, ws)
}

// DismissMenu closes the dropdown on a click outside it. Clicks on the
// avatar anchor are ignored.
func (h *Handler) DismissMenu(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())
	onAnchor, _ := strconv.ParseBool(r.FormValue("onAnchor"))
	ws.Menu.Dismiss(onAnchor)
	h.renderMenu(w, r, ws)
}

// Logout signs the session out and sends the browser to the callback URL.
// A failure keeps the dropdown open with an error.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())

	target, err := ws.Menu.Logout(r.Context(), tokenFrom(r.Context()))
	if err != nil {
		if errors.Is(err, application.ErrSignOutInProgress) {
			w.WriteHeader(http.StatusConflict)
			return
		}
		h.logger.Error("sign-out failed", "email", ws.Session.Email, "error", err)
		trigger(w, toastError, application.SignOutFailedNotice)
		h.renderMenu(w, r, ws)
		return
	}

	h.workspaces.Drop(ws.Session.TokenID)
	h.clearSession(w)

	if isHTMX(r) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
