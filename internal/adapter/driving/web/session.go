package web

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/risinglab/jewelpanel/internal/adapter/driving/web/templates"
	vm "github.com/risinglab/jewelpanel/internal/adapter/driving/web/viewmodel"
	"github.com/risinglab/jewelpanel/internal/application"
)

const (
	sessionCookieName = application.SessionCookieName
	loginPath         = "/login"
	invalidLoginText  = "Invalid email or password."
)

type ctxKey struct{}

type sessionContext struct {
	token     string
	workspace *application.Workspace
}

func workspaceFrom(ctx context.Context) *application.Workspace {
	sc, _ := ctx.Value(ctxKey{}).(sessionContext)
	return sc.workspace
}

func tokenFrom(ctx context.Context) string {
	sc, _ := ctx.Value(ctxKey{}).(sessionContext)
	return sc.token
}

// requireSession resolves the session cookie into the caller's workspace.
// Unauthenticated requests are redirected to the login page.
func (h *Handler) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			h.redirectToLogin(w, r)
			return
		}

		session, err := h.auth.Authenticate(r.Context(), cookie.Value)
		if err != nil {
			if !errors.Is(err, application.ErrInvalidSession) {
				h.logger.Error("failed to authenticate session", "error", err)
			}
			h.clearSession(w)
			h.redirectToLogin(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKey{}, sessionContext{
			token:     cookie.Value,
			workspace: h.workspaces.Get(session),
		})
		next(w, r.WithContext(ctx))
	}
}

func (h *Handler) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", loginPath)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, loginPath, http.StatusSeeOther)
}

// LoginPage renders the sign-in form.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	page := vm.LoginViewModel{
		PageViewModel: vm.PageViewModel{Title: "Login | " + pageTitle, CSRFToken: h.csrfToken(w, r)},
	}
	h.render(w, r, templates.LoginPage(page))
}

// Login verifies the credentials and starts a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	token, session, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		if !errors.Is(err, application.ErrInvalidCredentials) {
			h.logger.Error("login failed", "error", err)
		}
		page := vm.LoginViewModel{
			PageViewModel: vm.PageViewModel{Title: "Login | " + pageTitle, CSRFToken: h.csrfToken(w, r)},
			Email:         email,
			Error:         invalidLoginText,
		}
		h.renderStatus(w, r, http.StatusUnauthorized, templates.LoginPage(page))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookies,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookies,
	})
}
