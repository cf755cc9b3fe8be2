package hobbies

import "github.com/go-chi/chi/v5"

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/displayHobbies/{userId}", h.ListHandler)
	r.Get("/addHobbies/{userId}", h.AddFormHandler)
	r.Post("/addHobbies/{userId}", h.AddHandler)
	r.Post("/hobbies/{userId}/delete/{hobbyId}", h.DeleteHandler)
}
