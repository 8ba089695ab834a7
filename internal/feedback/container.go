package feedback

import "gorm.io/gorm"

type FeedbackContainer struct {
	Handler *Handler
	Service FeedbackService
}

func NewFeedbackContainer(db *gorm.DB, quizzes QuizLookup) *FeedbackContainer {
	repo := NewRepository(db)
	service := NewService(repo, quizzes)
	handler := NewHandler(service)

	return &FeedbackContainer{
		Handler: handler,
		Service: service,
	}
}
