package achievement

import (
	"errors"
	"net/http"

	"github.com/saulo-duarte/quizmaster/internal/config"
)

type Handler struct {
	service AchievementService
}

func NewHandler(s AchievementService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ListForCurrentUser(r.Context())
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			config.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, entries)
}
