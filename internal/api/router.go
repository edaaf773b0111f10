package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// The assembly catalogue is static reference data.
		r.Get("/assemblies", s.handleListAssemblies)

		r.Route("/estimates", func(r chi.Router) {
			r.Get("/", s.handleListEstimates)
			r.Post("/", s.handleCreateEstimate)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetEstimate)
				r.Patch("/", s.handleUpdateEstimate)
				r.Delete("/", s.handleDeleteEstimate)

				// Requirement engine: seed line items from detected rooms.
				r.Post("/analyze", s.handleAnalyze)

				r.Route("/items", func(r chi.Router) {
					r.Get("/", s.handleListLineItems)
					r.Post("/", s.handleCreateLineItem)
					r.Patch("/{itemID}", s.handleUpdateLineItem)
					r.Delete("/{itemID}", s.handleDeleteLineItem)
				})

				r.Route("/panel", func(r chi.Router) {
					r.Get("/", s.handleListCircuits)
					r.Post("/", s.handleSynthesizePanel)
				})

				r.Get("/compliance", s.handleCompliance)
			})
		})
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"version":      s.version,
		"code_edition": s.app.CodeEdition,
	})
}
