package feedback

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes is mounted under /api/quiz.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/{id}/feedback/", h.SubmitFeedback)
	r.Get("/{id}/feedback/", h.GetSummary)
	return r
}
