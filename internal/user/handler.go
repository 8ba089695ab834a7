package user

import (
	"errors"
	"net/http"

	"github.com/saulo-duarte/quizmaster/internal/auth"
	"github.com/saulo-duarte/quizmaster/internal/config"
)

type Handler struct {
	service UserService
}

func NewHandler(s UserService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.GetCurrent(r.Context())
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			config.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, u)
}

type creatorResult struct {
	Username string `json:"username"`
}

func (h *Handler) SearchCreators(w http.ResponseWriter, r *http.Request) {
	names, err := h.service.SearchCreators(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	creators := make([]creatorResult, 0, len(names))
	for _, n := range names {
		creators = append(creators, creatorResult{Username: n})
	}
	config.JSON(w, http.StatusOK, map[string]interface{}{"creators": creators})
}

// Provision makes sure the authenticated account has a local row.
func Provision(s UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := auth.GetUserClaimsFromContext(r.Context())
			if err != nil {
				config.Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			if _, err := s.EnsureFromClaims(r.Context(), claims); err != nil {
				if errors.Is(err, ErrInvalidID) {
					config.Error(w, http.StatusUnauthorized, "invalid token subject")
					return
				}
				config.Error(w, http.StatusInternalServerError, "internal server error")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
