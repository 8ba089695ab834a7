package feedback

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/saulo-duarte/quizmaster/internal/auth"
	"github.com/saulo-duarte/quizmaster/internal/config"
	"github.com/saulo-duarte/quizmaster/internal/quiz"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInvalidID     = errors.New("invalid id format")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrQuizNotFound  = quiz.ErrQuizNotFound
)

type QuizLookup interface {
	Exists(ctx context.Context, quizID uuid.UUID) (bool, error)
}

type FeedbackService interface {
	Submit(ctx context.Context, quizID string, dto SubmitFeedbackDTO) (*QuizFeedback, error)
	Summary(ctx context.Context, quizID string) (*Summary, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type feedbackService struct {
	repo    FeedbackRepository
	quizzes QuizLookup
}

func NewService(repo FeedbackRepository, quizzes QuizLookup) FeedbackService {
	return &feedbackService{repo: repo, quizzes: quizzes}
}

func (s *feedbackService) existingQuiz(ctx context.Context, log logrus.FieldLogger, quizID string) (uuid.UUID, error) {
	id, err := uuid.Parse(quizID)
	if err != nil {
		log.WithError(err).Warn("Invalid quiz ID")
		return uuid.Nil, ErrInvalidID
	}
	ok, err := s.quizzes.Exists(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to look up quiz")
		return uuid.Nil, err
	}
	if !ok {
		return uuid.Nil, ErrQuizNotFound
	}
	return id, nil
}

func (s *feedbackService) Submit(ctx context.Context, quizID string, dto SubmitFeedbackDTO) (*QuizFeedback, error) {
	log := config.WithContext(ctx)
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		log.WithError(err).Warn("Attempt to submit feedback without authentication")
		return nil, ErrUnauthorized
	}
	if dto.Rating < 1 || dto.Rating > 5 {
		return nil, ErrInvalidRating
	}

	id, err := s.existingQuiz(ctx, log, quizID)
	if err != nil {
		return nil, err
	}

	f := &QuizFeedback{
		QuizID:  id,
		UserID:  userID,
		Rating:  dto.Rating,
		Comment: strings.TrimSpace(dto.Comment),
	}
	created, err := s.repo.Upsert(ctx, f)
	if err != nil {
		log.WithError(err).Error("Failed to save quiz feedback")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"quiz_id": id,
		"rating":  f.Rating,
		"created": created,
	}).Info("Quiz feedback saved")
	return f, nil
}

func (s *feedbackService) Summary(ctx context.Context, quizID string) (*Summary, error) {
	log := config.WithContext(ctx)

	id, err := s.existingQuiz(ctx, log, quizID)
	if err != nil {
		return nil, err
	}

	summary, err := s.repo.Summary(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to summarize quiz feedback")
		return nil, err
	}
	summary.AverageRating = math.Round(summary.AverageRating*100) / 100
	return summary, nil
}

func (s *feedbackService) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountByUser(ctx, userID)
}
