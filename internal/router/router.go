package router

import (
	"net/http"

	"stockline-api/internal/handler"
	"stockline-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler       *handler.Handler
	ItemHandler   *handler.ItemHandler
	AdminHandler  *handler.AdminHandler
	UploadHandler *handler.UploadHandler
	AdminAuth     func(http.Handler) http.Handler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID", "X-Admin-Password"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.Handler != nil {
		r.Get("/", cfg.Handler.Root)
		r.Get("/health", cfg.Handler.Health)
	}

	if cfg.ItemHandler != nil {
		r.Route("/items", func(r chi.Router) {
			r.Get("/", cfg.ItemHandler.List)
			r.Post("/", cfg.ItemHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", cfg.ItemHandler.Get)
				r.Put("/", cfg.ItemHandler.Update)
				r.Delete("/", cfg.ItemHandler.Delete)
			})
		})
	}

	// Admin routes sit behind the shared-secret gate.
	if cfg.AdminHandler != nil {
		r.Route("/admin", func(r chi.Router) {
			if cfg.AdminAuth != nil {
				r.Use(cfg.AdminAuth)
			}
			r.Delete("/items/{id}", cfg.AdminHandler.DeleteItem)
			r.Get("/stats", cfg.AdminHandler.GetStats)
		})
	}

	if cfg.UploadHandler != nil {
		r.Post("/uploadfile/", cfg.UploadHandler.Upload)
	}

	return r
}
