package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/monitoradlo/monitoradlo-go/internal/auth"
)

// NewRouter creates and returns the main HTTP router. backups may be nil.
func NewRouter(ctrl Controller, authSvc *auth.Service, bus EventBus, backups BackupLister) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(corsMiddleware)
	r.Use(middleware.CleanPath)

	h := &Handlers{ctrl: ctrl, events: bus, backups: backups}

	r.Group(func(r chi.Router) {
		r.Use(authSvc.Middleware)

		// Editor state
		r.Get("/api", h.getState)
		r.Get("/api/", h.getState)
		r.Get("/api/config", h.getConfig)
		r.Get("/api/layout", h.getLayout)
		r.Get("/api/layout.png", h.getLayoutPNG)
		r.Put("/api/selection", h.setSelection)

		// Live outputs
		r.Get("/api/live", h.getLive)
		r.Post("/api/live/refresh", h.refreshLive)
		r.Post("/api/preview/{connector}", h.preview)

		// Profiles
		r.Post("/api/profiles", h.createProfile)
		r.Patch("/api/profiles/{pid}", h.setProfile)
		r.Delete("/api/profiles/{pid}", h.deleteProfile)
		r.Post("/api/profiles/{pid}/duplicate", h.duplicateProfile)
		r.Post("/api/profiles/{pid}/move", h.moveProfile)

		// Output entries
		r.Post("/api/profiles/{pid}/outputs", h.createOutput)
		r.Patch("/api/profiles/{pid}/outputs/{oid}", h.setOutput)
		r.Put("/api/profiles/{pid}/outputs/{oid}/position", h.setOutputPosition)
		r.Delete("/api/profiles/{pid}/outputs/{oid}", h.deleteOutput)
		r.Post("/api/profiles/{pid}/outputs/{oid}/move", h.moveOutput)

		// Persistence
		r.Post("/api/save", h.save)
		r.Post("/api/load", h.load)
		r.Get("/api/backups", h.getBackups)

		// SSE
		r.Get("/api/subscribe", h.sseEvents)
	})

	return r
}

// corsMiddleware adds permissive CORS headers so a locally served canvas
// can reach the API.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
