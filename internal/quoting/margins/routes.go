package margins

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes attaches margin settings routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/margin-settings", h.Show)
	r.Put("/margin-settings", h.Update)
}
