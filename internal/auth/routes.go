package auth

import "github.com/go-chi/chi/v5"

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/login", h.LoginFormHandler)
	r.Post("/login", h.LoginHandler)
	r.Get("/logout", h.LogoutHandler)
}
