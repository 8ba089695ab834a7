package submission

import (
	"github.com/saulo-duarte/quizmaster/internal/quiz"
	"gorm.io/gorm"
)

type SubmissionContainer struct {
	Handler *Handler
	Service SubmissionService
}

func NewSubmissionContainer(
	db *gorm.DB,
	repo SubmissionRepository,
	quizzes quiz.QuizService,
	profiles ProfileUpdater,
	streaks ActivityRecorder,
	notifier Notifier,
	achievements AchievementChecker,
) *SubmissionContainer {
	service := NewService(db, repo, quizzes, profiles, streaks, notifier, achievements)
	handler := NewHandler(service)

	return &SubmissionContainer{
		Handler: handler,
		Service: service,
	}
}
