package quotes

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes attaches the quote routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/quotes", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/number/{quoteNumber}", h.ShowByNumber)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Show)
			r.Patch("/", h.Update)
			r.Delete("/", h.Delete)

			r.Post("/items", h.AddItem)
			r.Patch("/items/{itemID}", h.UpdateItem)
			r.Delete("/items/{itemID}", h.RemoveItem)
			r.Post("/products", h.AddProduct)

			r.Post("/apply-template", h.ApplyTemplate)
			r.Post("/apply-volume-discounts", h.ApplyVolumeDiscounts)

			r.Post("/submit", h.Submit)
			r.Post("/send", h.Send)
			r.Post("/views", h.RecordView)
			r.Post("/decision", h.RecordDecision)
			r.Post("/comments", h.AddComment)

			r.Get("/render", h.Render)
		})
	})
}
