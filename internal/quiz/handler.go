package quiz

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/saulo-duarte/quizmaster/internal/config"
)

var validate = validator.New()

type Handler struct {
	service QuizService
}

func NewHandler(s QuizService) *Handler {
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
	case errors.Is(err, ErrQuestionNotFound):
		config.Error(w, http.StatusNotFound, "question not found")
	case IsValidationError(err):
		config.Error(w, http.StatusBadRequest, err.Error())
	default:
		config.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateQuizDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body for quiz creation")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(dto); err != nil {
		config.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	q, err := h.service.CreateQuiz(r.Context(), dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, q)
}

func (h *Handler) UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto UpdateQuizDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body for quiz update")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(dto); err != nil {
		config.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	q, err := h.service.UpdateQuiz(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, q)
}

func (h *Handler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteQuiz(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "quiz deleted successfully",
	})
}

func (h *Handler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto QuestionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body for new question")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(dto); err != nil {
		config.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	question, err := h.service.AddQuestion(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, question)
}

func (h *Handler) RemoveQuestion(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RemoveQuestion(r.Context(), chi.URLParam(r, "questionID")); err != nil {
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "question removed successfully",
	})
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.GetQuiz(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, q)
}

func (h *Handler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	var (
		quizzes []*Quiz
		err     error
	)
	if mine, _ := strconv.ParseBool(r.URL.Query().Get("mine")); mine {
		quizzes, err = h.service.ListMine(r.Context())
	} else {
		quizzes, err = h.service.ListAvailable(r.Context(), r.URL.Query().Get("creator"))
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if quizzes == nil {
		quizzes = []*Quiz{}
	}

	config.JSON(w, http.StatusOK, quizzes)
}
