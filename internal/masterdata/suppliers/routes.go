package suppliers

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/suppliers", h.List)
	r.Route("/supplier", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/{id}", h.Show)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}
