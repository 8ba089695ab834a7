package submission

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
	service SubmissionService
}

func NewHandler(s SubmissionService) *Handler {
	return &Handler{service: s}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		config.Error(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, ErrForbidden):
		config.Error(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, ErrInvalidID):
		config.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrQuizNotFound):
		config.Error(w, http.StatusNotFound, "quiz not found")
	case errors.Is(err, ErrSubmissionNotFound):
		config.Error(w, http.StatusNotFound, "submission not found")
	case errors.Is(err, ErrAlreadySubmitted):
		config.Error(w, http.StatusConflict, "you have already taken this quiz")
	default:
		config.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req SubmitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid request body for quiz submission")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		config.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	sub, err := h.service.SubmitQuiz(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, sub)
}

func (h *Handler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	sub, err := h.service.GetSubmission(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, sub)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	subs, err := h.service.ListMine(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if subs == nil {
		subs = []*Submission{}
	}

	config.JSON(w, http.StatusOK, subs)
}

func (h *Handler) QuizResults(w http.ResponseWriter, r *http.Request) {
	subs, err := h.service.QuizResults(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if subs == nil {
		subs = []*Submission{}
	}

	config.JSON(w, http.StatusOK, subs)
}
