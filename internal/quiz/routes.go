package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.CreateQuiz)
	r.Get("/", h.ListQuizzes)
	r.Get("/{id}", h.GetQuiz)
	r.Put("/{id}", h.UpdateQuiz)
	r.Delete("/{id}", h.DeleteQuiz)
	r.Post("/{id}/questions", h.AddQuestion)
	r.Delete("/questions/{questionID}", h.RemoveQuestion)
	return r
}
