package profile

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
	service ProfileService
}

func NewHandler(s ProfileService) *Handler {
	return &Handler{service: s}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		config.Error(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, ErrUserNotFound):
		config.Error(w, http.StatusNotFound, "user not found")
	default:
		config.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetMyProfile(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, view)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, view)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto UpdateProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body for profile update")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(dto); err != nil {
		config.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.service.UpdateMine(r.Context(), dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, p)
}

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.service.Leaderboard(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, board)
}
