package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers all web GUI routes on the provided mux.
// Pages are served at / and /login, htmx fragments under /app/*, and static
// assets from the embedded filesystem at /static/*.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	mux.HandleFunc("GET /login", h.LoginPage)
	mux.HandleFunc("POST /login", h.requireCSRF(h.Login))

	auth := func(next http.HandlerFunc) http.HandlerFunc {
		return h.requireSession(h.requireCSRF(next))
	}

	mux.HandleFunc("GET /{$}", auth(h.Dashboard))
	mux.HandleFunc("POST /logout", auth(h.Logout))

	mux.HandleFunc("GET /app/jewellery", auth(h.JewelleryList))
	mux.HandleFunc("GET /app/jewellery/new", auth(h.NewJewellery))
	mux.HandleFunc("GET /app/jewellery/{id}/edit", auth(h.EditJewellery))
	mux.HandleFunc("POST /app/jewellery", auth(h.SubmitJewellery))

	mux.HandleFunc("POST /app/dialog/close", auth(h.CloseDialog))
	mux.HandleFunc("POST /app/dialog/images", auth(h.UploadImages))
	mux.HandleFunc("DELETE /app/dialog/images/{id}", auth(h.RemoveImage))
	mux.HandleFunc("POST /app/dialog/description", auth(h.SyncDescription))

	mux.HandleFunc("POST /app/menu/toggle", auth(h.ToggleMenu))
	mux.HandleFunc("POST /app/menu/dismiss", auth(h.DismissMenu))
}
