package templates

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes attaches the template routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/templates", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Show)
			r.Patch("/", h.Update)
			r.Delete("/", h.Delete)
		})
	})
}
