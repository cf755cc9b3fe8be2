package users

import "github.com/go-chi/chi/v5"

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.ListHandler)
	r.Get("/addUser", h.AddFormHandler)
	r.Post("/addUser", h.AddHandler)
	r.Get("/editUser/{id}", h.EditFormHandler)
	r.Post("/editUser/{id}", h.EditHandler)
	r.Post("/deleteUser/{id}", h.DeleteHandler)
}
