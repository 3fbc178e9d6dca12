package httphandler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/risinglab/jewelpanel/internal/application"
)

// requireSession answers 401 unless the request carries a valid session
// token, either as a bearer token or in the dashboard session cookie.
func (h *Handler) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)
		if token == "" {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		if _, err := h.auth.Authenticate(r.Context(), token); err != nil {
			if !errors.Is(err, application.ErrInvalidSession) {
				h.logger.Error("failed to authenticate api request", "error", err)
			}
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusUnauthorized, "invalid session")
			return
		}

		next(w, r)
	}
}

func sessionToken(r *http.Request) string {
	if v, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(v)
	}
	if c, err := r.Cookie(application.SessionCookieName); err == nil {
		return c.Value
	}
	return ""
}
