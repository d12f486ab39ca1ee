package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(CORS)

	// The websocket upgrade needs the raw ResponseWriter, so the change feed
	// sits outside the logging middleware.
	r.Get("/_events", s.hub.ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(RequestID)
		r.Use(Logger(s.logger))
		r.Use(Recovery(s.logger))

		r.Get("/health", s.health)

		r.Route("/todos", func(r chi.Router) {
			r.Get("/", s.list)
			r.Post("/", s.create)
			r.Get("/{id}", s.get)
			r.Patch("/{id}", s.patch)
			r.Put("/{id}", s.replace)
			r.Delete("/{id}", s.remove)
		})
	})
	return r
}
