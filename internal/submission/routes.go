package submission

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.ListMine)
	r.Get("/{id}", h.GetSubmission)
	return r
}
