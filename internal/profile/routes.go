package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.GetMyProfile)
	r.Put("/", h.UpdateProfile)
	r.Get("/{username}", h.GetProfile)
	return r
}
