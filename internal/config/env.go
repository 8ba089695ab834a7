package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv             string
	Port               string
	DatabaseDriver     string
	DatabaseDSN        string
	JWTSecret          string
	CorsAllowedOrigins []string
	LogLevel           string
	Location           *time.Location
	LeaderboardSize    int
}

var (
	current  *Config
	loadOnce sync.Once
)

// Load reads .env (when present) and the process environment once.
func Load() *Config {
	loadOnce.Do(func() {
		_ = godotenv.Load()
		current = fromEnv()
	})
	return current
}

// Get returns the loaded configuration, loading it on first use.
func Get() *Config {
	return Load()
}

func fromEnv() *Config {
	loc, err := time.LoadLocation(getEnv("APP_TIMEZONE", "UTC"))
	if err != nil {
		loc = time.UTC
	}

	size, err := strconv.Atoi(getEnv("LEADERBOARD_SIZE", "10"))
	if err != nil || size <= 0 {
		size = 10
	}

	return &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		DatabaseDriver:     strings.ToLower(getEnv("DATABASE_DRIVER", "postgres")),
		DatabaseDSN:        os.Getenv("DATABASE_DSN"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		CorsAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Location:           loc,
		LeaderboardSize:    size,
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
