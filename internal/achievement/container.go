package achievement

import "gorm.io/gorm"

type AchievementContainer struct {
	Handler *Handler
	Service AchievementService
}

func NewAchievementContainer(
	db *gorm.DB,
	profiles ProfileReader,
	submissions SubmissionReader,
	streaks StreakReader,
	notifier Notifier,
) *AchievementContainer {
	repo := NewRepository(db)
	service := NewService(repo, profiles, submissions, streaks, notifier)
	handler := NewHandler(service)

	return &AchievementContainer{
		Handler: handler,
		Service: service,
	}
}
