package stats

import (
	"errors"
	"net/http"

	"github.com/saulo-duarte/quizmaster/internal/config"
)

type Handler struct {
	service StatsService
}

func NewHandler(s StatsService) *Handler {
	return &Handler{service: s}
}

func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrUnauthorized) {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	config.Error(w, http.StatusInternalServerError, "internal server error")
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, d)
}

func (h *Handler) UserStats(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.UserStats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, s)
}
