package middlewares

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/saulo-duarte/quizmaster/internal/config"
)

// Cors builds the CORS middleware for the given allowed origins.
func Cors(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// CorsMiddleware applies CORS using CORS_ALLOWED_ORIGINS.
func CorsMiddleware(next http.Handler) http.Handler {
	return Cors(config.Get().CorsAllowedOrigins)(next)
}
