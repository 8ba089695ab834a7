package container

import (
	"context"
	"log"

	"github.com/saulo-duarte/quizmaster/internal/achievement"
	"github.com/saulo-duarte/quizmaster/internal/auth"
	"github.com/saulo-duarte/quizmaster/internal/config"
	"github.com/saulo-duarte/quizmaster/internal/feedback"
	"github.com/saulo-duarte/quizmaster/internal/notification"
	"github.com/saulo-duarte/quizmaster/internal/profile"
	"github.com/saulo-duarte/quizmaster/internal/quiz"
	"github.com/saulo-duarte/quizmaster/internal/router"
	"github.com/saulo-duarte/quizmaster/internal/stats"
	"github.com/saulo-duarte/quizmaster/internal/streak"
	"github.com/saulo-duarte/quizmaster/internal/submission"
	"github.com/saulo-duarte/quizmaster/internal/user"
	"gorm.io/gorm"
)

type Container struct {
	UserContainer         *user.UserContainer
	QuizContainer         *quiz.QuizContainer
	SubmissionContainer   *submission.SubmissionContainer
	ProfileContainer      *profile.ProfileContainer
	StreakContainer       *streak.StreakContainer
	AchievementContainer  *achievement.AchievementContainer
	NotificationContainer *notification.NotificationContainer
	FeedbackContainer     *feedback.FeedbackContainer
	StatsContainer        *stats.StatsContainer
}

// Models lists every persisted entity in dependency order.
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&quiz.Quiz{},
		&quiz.Question{},
		&quiz.Choice{},
		&submission.Submission{},
		&submission.Answer{},
		&profile.Profile{},
		&achievement.Achievement{},
		&achievement.UserAchievement{},
		&streak.StudyStreak{},
		&notification.Notification{},
		&feedback.QuizFeedback{},
	}
}

func New() *Container {
	cfg := config.Load()
	config.Init()
	auth.Init()

	ctx := context.Background()
	if err := config.Connect(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	if err := config.Migrate(config.DB, Models()...); err != nil {
		log.Fatalf("failed to migrate DB: %v", err)
	}

	c := Build(config.DB, cfg)
	if err := c.AchievementContainer.Service.Seed(ctx); err != nil {
		log.Fatalf("failed to seed achievements: %v", err)
	}
	return c
}

// Build wires every feature against db.
func Build(db *gorm.DB, cfg *config.Config) *Container {
	notificationContainer := notification.NewNotificationContainer(db)
	userContainer := user.NewUserContainer(db)
	quizContainer := quiz.NewQuizContainer(db)

	submissionRepo := submission.NewRepository(db)
	profileRepo := profile.NewRepository(db)

	streakContainer := streak.NewStreakContainer(db, notificationContainer.Service, cfg.Location)
	achievementContainer := achievement.NewAchievementContainer(
		db,
		profileRepo,
		submissionRepo,
		streakContainer.Service,
		notificationContainer.Service,
	)
	profileContainer := profile.NewProfileContainer(
		profileRepo,
		userContainer.Repo,
		submissionRepo,
		achievementContainer.Service,
		cfg.LeaderboardSize,
	)
	submissionContainer := submission.NewSubmissionContainer(
		db,
		submissionRepo,
		quizContainer.Service,
		profileContainer.Service,
		streakContainer.Service,
		notificationContainer.Service,
		achievementContainer.Service,
	)
	feedbackContainer := feedback.NewFeedbackContainer(db, quizContainer.Service)
	statsContainer := stats.NewStatsContainer(
		profileContainer.Service,
		streakContainer.Service,
		notificationContainer.Service,
		feedbackContainer.Service,
		submissionRepo,
		cfg.Location,
	)

	return &Container{
		UserContainer:         userContainer,
		QuizContainer:         quizContainer,
		SubmissionContainer:   submissionContainer,
		ProfileContainer:      profileContainer,
		StreakContainer:       streakContainer,
		AchievementContainer:  achievementContainer,
		NotificationContainer: notificationContainer,
		FeedbackContainer:     feedbackContainer,
		StatsContainer:        statsContainer,
	}
}

func (c *Container) RouterConfig() router.RouterConfig {
	return router.RouterConfig{
		UserHandler:         c.UserContainer.Handler,
		UserService:         c.UserContainer.Service,
		QuizHandler:         c.QuizContainer.Handler,
		SubmissionHandler:   c.SubmissionContainer.Handler,
		ProfileHandler:      c.ProfileContainer.Handler,
		StreakHandler:       c.StreakContainer.Handler,
		AchievementHandler:  c.AchievementContainer.Handler,
		NotificationHandler: c.NotificationContainer.Handler,
		FeedbackHandler:     c.FeedbackContainer.Handler,
		StatsHandler:        c.StatsContainer.Handler,
	}
}
