package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures all API routes.
func SetupRoutes(h *Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Route("/processes", func(r chi.Router) {
			r.Get("/", h.ListProcesses)
			r.Post("/", h.CreateProcess)
			r.Get("/{id}", h.GetProcess)
			r.Put("/{id}", h.UpdateProcess)
			r.Delete("/{id}", h.DeleteProcess)
			r.Get("/{id}/candidates", h.ListCandidates)
			r.Post("/{id}/import", h.ImportCandidates)
			r.Get("/{id}/report", h.DownloadProcessReport)
		})

		r.Route("/candidates", func(r chi.Router) {
			r.Post("/", h.CreateCandidate)
			r.Get("/{id}", h.GetCandidate)
			r.Put("/{id}", h.UpdateCandidate)
			r.Delete("/{id}", h.DeleteCandidate)
			r.Post("/{id}/move", h.MoveCandidate)
		})

		r.Get("/imports/recent", h.RecentImports)

		r.Route("/letters", func(r chi.Router) {
			r.Post("/detect", h.DetectTemplateFields)
			r.Post("/autofill", h.AutoFillFields)
			r.Post("/generate", h.GenerateLetter)
			r.Post("/preview", h.PreviewLetter)
		})
	})

	return r
}
