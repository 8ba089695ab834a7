package auth

import (
	"net/http"
	"strings"

	"github.com/saulo-duarte/quizmaster/internal/config"
	"github.com/sirupsen/logrus"
)

const cookieName = "jwt"

// AuthMiddleware accepts the session cookie or an "Authorization: Bearer" header.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := config.WithContext(r.Context())

		tokenStr := tokenFromRequest(r)
		if tokenStr == "" {
			config.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		claims, err := ValidateJWT(tokenStr)
		if err != nil {
			log.WithError(err).Warn("Invalid session token")
			config.Error(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := WithClaims(r.Context(), claims)
		ctx = config.ContextWithFields(ctx, logrus.Fields{"user_id": claims.UserID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}

	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
