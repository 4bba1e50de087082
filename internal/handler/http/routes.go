package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(withLogging)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}
	router.Use(middleware.Compress(5, "application/json"))

	// polling endpoints must not keep an idle vault unlocked
	router.Get("/api/version", h.getVersion)
	router.Get("/api/storage/status", h.status)

	router.Group(func(r chi.Router) {
		r.Use(h.withTouch)

		r.Post("/api/storage/configure", h.configure)
		r.Post("/api/storage/unlock", h.unlock)
		r.Post("/api/storage/lock", h.lock)

		r.Get("/api/routes", h.routingTable)
		r.Get("/api/routes/{entityType}", h.route)

		r.Get("/api/entities/{entityType}", h.listEntities)
		r.Get("/api/entities/{entityType}/{id}", h.getEntity)
		r.Put("/api/entities/{entityType}/{id}", h.putEntity)
		r.Delete("/api/entities/{entityType}/{id}", h.deleteEntity)

		r.Get("/api/backup", h.exportBackup)
		r.Post("/api/backup/import", h.importBackup)
	})

	return router
}
