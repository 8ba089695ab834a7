package feedback

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/saulo-duarte/quizmaster/internal/config"
)

var validate = validator.New()

type Handler struct {
	service FeedbackService
}

func NewHandler(s FeedbackService) *Handler {
	return &Handler{service: s}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		config.Error(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, ErrInvalidID):
		config.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidRating):
		config.Error(w, http.StatusBadRequest, "invalid rating")
	case errors.Is(err, ErrQuizNotFound):
		config.Error(w, http.StatusNotFound, "quiz not found")
	default:
		config.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto SubmitFeedbackDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body for quiz feedback")
		config.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := validate.Struct(dto); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid rating")
		return
	}

	if _, err := h.service.Submit(r.Context(), chi.URLParam(r, "id"), dto); err != nil {
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, summary)
}
