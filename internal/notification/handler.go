package notification

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/quizmaster/internal/config"
)

type Handler struct {
	service NotificationService
}

func NewHandler(s NotificationService) *Handler {
	return &Handler{service: s}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		config.Error(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, ErrInvalidID):
		config.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotificationNotFound):
		config.Error(w, http.StatusNotFound, "notification not found")
	default:
		config.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) ListUnread(w http.ResponseWriter, r *http.Request) {
	inbox, err := h.service.ListUnread(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, inbox)
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.service.MarkRead(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.service.MarkAllRead(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
