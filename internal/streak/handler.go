package streak

import (
	"errors"
	"net/http"

	"github.com/saulo-duarte/quizmaster/internal/config"
)

type Handler struct {
	service StreakService
}

func NewHandler(s StreakService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) GetStreak(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.GetMine(r.Context())
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			config.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, st)
}
