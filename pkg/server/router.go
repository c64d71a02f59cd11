package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no such endpoint")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	r.Get("/health", s.handleHealth)
	r.Get("/status", s.handleStatus)
	r.Get("/artwork", s.handleArtwork)

	r.Route("/navigate", func(r chi.Router) {
		r.Post("/next", s.handleNext)
		r.Post("/prev", s.handlePrev)
		r.Post("/artwork/{id}", s.handleShow)
		r.Post("/{index}", s.handleGoTo)
	})

	r.Route("/autoplay", func(r chi.Router) {
		r.Post("/pause", s.handleHold(true))
		r.Post("/resume", s.handleHold(false))
	})

	r.Post("/pointer", s.handlePointer)

	return r
}
