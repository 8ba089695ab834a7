package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/saulo-duarte/quizmaster/internal/achievement"
	"github.com/saulo-duarte/quizmaster/internal/auth"
	"github.com/saulo-duarte/quizmaster/internal/config"
	"github.com/saulo-duarte/quizmaster/internal/feedback"
	"github.com/saulo-duarte/quizmaster/internal/middlewares"
	"github.com/saulo-duarte/quizmaster/internal/notification"
	"github.com/saulo-duarte/quizmaster/internal/profile"
	"github.com/saulo-duarte/quizmaster/internal/quiz"
	"github.com/saulo-duarte/quizmaster/internal/stats"
	"github.com/saulo-duarte/quizmaster/internal/streak"
	"github.com/saulo-duarte/quizmaster/internal/submission"
	"github.com/saulo-duarte/quizmaster/internal/user"
)

type RouterConfig struct {
	UserHandler         *user.Handler
	UserService         user.UserService
	QuizHandler         *quiz.Handler
	SubmissionHandler   *submission.Handler
	ProfileHandler      *profile.Handler
	StreakHandler       *streak.Handler
	AchievementHandler  *achievement.Handler
	NotificationHandler *notification.Handler
	FeedbackHandler     *feedback.Handler
	StatsHandler        *stats.Handler
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/logout", auth.NewHandler().Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)
		r.Use(user.Provision(cfg.UserService))

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/quizzes", quiz.Routes(cfg.QuizHandler))
		r.Mount("/submissions", submission.Routes(cfg.SubmissionHandler))
		r.Mount("/profile", profile.Routes(cfg.ProfileHandler))
		r.Mount("/achievements", achievement.Routes(cfg.AchievementHandler))

		r.Get("/quizzes/creators", cfg.UserHandler.SearchCreators)
		r.Post("/quizzes/{id}/submissions", cfg.SubmissionHandler.SubmitQuiz)
		r.Get("/quizzes/{id}/results", cfg.SubmissionHandler.QuizResults)
		r.Get("/leaderboard", cfg.ProfileHandler.Leaderboard)

		r.Route("/api", func(r chi.Router) {
			r.Mount("/notifications", notification.Routes(cfg.NotificationHandler))
			r.Mount("/streak", streak.Routes(cfg.StreakHandler))
			r.Mount("/quiz", feedback.Routes(cfg.FeedbackHandler))
			r.Get("/dashboard-stats/", cfg.StatsHandler.Dashboard)
			r.Get("/user-stats/", cfg.StatsHandler.UserStats)
		})
	})
	return r
}
