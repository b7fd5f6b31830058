package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes registers all API routes on the given chi router, plus the
// static file server for the UI. Unmatched /api paths get the JSON
// not-found envelope instead of the file server's plain 404.
func MountRoutes(r chi.Router, h *Handlers, staticDir string) {
	r.Route("/api", func(api chi.Router) {
		api.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusNotFound, "not found")
		})
		api.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		})

		api.Get("/health", h.Health)
		api.Get("/runtime", h.Runtime)
		api.Get("/runtime/metrics", h.RuntimeMetrics)

		api.Post("/chat", h.Chat)
		api.Post("/search", h.WebSearch)

		api.Get("/kali/tools", h.ListTools)
		api.Post("/kali/run", h.RunTool)

		api.Get("/agents/library", h.ListAgentLibrary)
		api.Get("/agents/library/{file}", h.DownloadAgent)
		api.Post("/agents/save", h.SaveAgent)
		api.Post("/agents/import", h.ImportAgent)
	})

	if staticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(staticDir)))
	}
}
