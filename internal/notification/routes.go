package notification

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.ListUnread)
	r.Post("/read-all/", h.MarkAllRead)
	r.Post("/{id}/read/", h.MarkRead)
	return r
}
