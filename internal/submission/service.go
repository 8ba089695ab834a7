package submission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/quizmaster/internal/auth"
	"github.com/saulo-duarte/quizmaster/internal/config"
	"github.com/saulo-duarte/quizmaster/internal/notification"
	"github.com/saulo-duarte/quizmaster/internal/quiz"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RecentLimit is how many submissions the profile page shows.
const RecentLimit = 5

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidID        = errors.New("invalid id format")
	ErrAlreadySubmitted = errors.New("quiz already submitted")
	ErrQuizNotFound     = quiz.ErrQuizNotFound
)

// ProfileUpdater applies a scored submission to the user's totals inside tx.
type ProfileUpdater interface {
	ApplySubmission(ctx context.Context, tx *gorm.DB, userID uuid.UUID, score int) error
}

type ActivityRecorder interface {
	RecordActivity(ctx context.Context, userID uuid.UUID) error
}

type Notifier interface {
	Emit(ctx context.Context, userID uuid.UUID, typ notification.Type, title, message string) (*notification.Notification, error)
}

type AchievementChecker interface {
	CheckAchievements(ctx context.Context, userID uuid.UUID) error
}

type SubmissionService interface {
	SubmitQuiz(ctx context.Context, quizID string, req SubmitQuizRequest) (*Submission, error)
	GetSubmission(ctx context.Context, submissionID string) (*Submission, error)
	ListMine(ctx context.Context) ([]*Submission, error)
	ListRecent(ctx context.Context, userID uuid.UUID) ([]*Submission, error)
	QuizResults(ctx context.Context, quizID string) ([]*Submission, error)
}

type submissionService struct {
	db           *gorm.DB
	repo         SubmissionRepository
	quizzes      quiz.QuizService
	profiles     ProfileUpdater
	streaks      ActivityRecorder
	notifier     Notifier
	achievements AchievementChecker
}

func NewService(
	db *gorm.DB,
	repo SubmissionRepository,
	quizzes quiz.QuizService,
	profiles ProfileUpdater,
	streaks ActivityRecorder,
	notifier Notifier,
	achievements AchievementChecker,
) SubmissionService {
	return &submissionService{
		db:           db,
		repo:         repo,
		quizzes:      quizzes,
		profiles:     profiles,
		streaks:      streaks,
		notifier:     notifier,
		achievements: achievements,
	}
}

func currentUser(ctx context.Context, log logrus.FieldLogger, action string) (uuid.UUID, error) {
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		log.WithError(err).Warnf("Attempt to %s without authentication", action)
		return uuid.Nil, ErrUnauthorized
	}
	return userID, nil
}

func parseUUID(log logrus.FieldLogger, id string, entityName string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		log.WithError(err).Warnf("Invalid %s ID", entityName)
		return uuid.Nil, ErrInvalidID
	}
	return parsed, nil
}

func (s *submissionService) SubmitQuiz(ctx context.Context, quizID string, req SubmitQuizRequest) (*Submission, error) {
	log := config.WithContext(ctx)
	userID, err := currentUser(ctx, log, "submit quiz")
	if err != nil {
		return nil, err
	}

	id, err := parseUUID(log, quizID, "quiz")
	if err != nil {
		return nil, err
	}

	q, err := s.quizzes.GetActiveQuiz(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrQuizNotFound) {
			log.WithError(err).Error("Failed to load quiz for submission")
		}
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, nil, q.ID, userID)
	if err != nil {
		log.WithError(err).Error("Failed to check previous submissions")
		return nil, err
	}
	if exists {
		log.WithField("quiz_id", q.ID).Warn("Quiz already submitted")
		return nil, ErrAlreadySubmitted
	}

	eval := Evaluate(q, req.Answers)
	sub := &Submission{
		QuizID:           q.ID,
		UserID:           userID,
		Score:            eval.Score,
		TotalPoints:      eval.TotalPoints,
		SubmittedAt:      time.Now().UTC(),
		TimeTakenSeconds: req.TimeTakenSeconds,
		Answers:          eval.Answers,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, sub); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadySubmitted
			}
			return err
		}
		return s.profiles.ApplySubmission(ctx, tx, userID, sub.Score)
	})
	if err != nil {
		if !errors.Is(err, ErrAlreadySubmitted) {
			log.WithError(err).Error("Failed to save submission")
		}
		return nil, err
	}
	sub.Percentage = sub.PercentageScore()

	log.WithFields(logrus.Fields{
		"submission_id": sub.ID,
		"quiz_id":       q.ID,
		"score":         sub.Score,
		"total_points":  sub.TotalPoints,
	}).Info("Quiz submitted")

	s.afterSubmit(ctx, log, q, sub)
	return sub, nil
}

// afterSubmit runs the side effects of a committed submission. Failures are logged only.
func (s *submissionService) afterSubmit(ctx context.Context, log logrus.FieldLogger, q *quiz.Quiz, sub *Submission) {
	if s.streaks != nil {
		if err := s.streaks.RecordActivity(ctx, sub.UserID); err != nil {
			log.WithError(err).Warn("Failed to update study streak")
		}
	}

	if s.notifier != nil {
		message := fmt.Sprintf("You scored %d/%d (%.2f%%) on %q.", sub.Score, sub.TotalPoints, sub.Percentage, q.Title)
		if _, err := s.notifier.Emit(ctx, sub.UserID, notification.TypeQuizResult, "Quiz Completed", message); err != nil {
			log.WithError(err).Warn("Failed to emit quiz result notification")
		}
	}

	if s.achievements != nil {
		if err := s.achievements.CheckAchievements(ctx, sub.UserID); err != nil {
			log.WithError(err).Warn("Failed to evaluate achievements")
		}
	}
}

// GetSubmission returns a submission to its owner or to the quiz creator.
func (s *submissionService) GetSubmission(ctx context.Context, submissionID string) (*Submission, error) {
	log := config.WithContext(ctx)
	userID, err := currentUser(ctx, log, "view submission")
	if err != nil {
		return nil, err
	}

	id, err := parseUUID(log, submissionID, "submission")
	if err != nil {
		return nil, err
	}

	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.UserID != userID && (sub.Quiz == nil || sub.Quiz.CreatorID != userID) {
		log.WithField("submission_id", id).Warn("Submission access denied")
		return nil, ErrSubmissionNotFound
	}
	return sub, nil
}

func (s *submissionService) ListMine(ctx context.Context) ([]*Submission, error) {
	log := config.WithContext(ctx)
	userID, err := currentUser(ctx, log, "list submissions")
	if err != nil {
		return nil, err
	}

	subs, err := s.repo.ListByUser(ctx, userID, 0)
	if err != nil {
		log.WithError(err).Error("Failed to list submissions")
		return nil, err
	}
	return subs, nil
}

func (s *submissionService) ListRecent(ctx context.Context, userID uuid.UUID) ([]*Submission, error) {
	return s.repo.ListByUser(ctx, userID, RecentLimit)
}

func (s *submissionService) QuizResults(ctx context.Context, quizID string) ([]*Submission, error) {
	log := config.WithContext(ctx)

	q, err := s.quizzes.GetOwnedQuiz(ctx, quizID)
	if err != nil {
		switch {
		case errors.Is(err, quiz.ErrUnauthorized):
			return nil, ErrUnauthorized
		case errors.Is(err, quiz.ErrForbidden):
			return nil, ErrForbidden
		case errors.Is(err, quiz.ErrInvalidID):
			return nil, ErrInvalidID
		}
		return nil, err
	}

	subs, err := s.repo.ListByQuiz(ctx, q.ID)
	if err != nil {
		log.WithError(err).Error("Failed to list quiz results")
		return nil, err
	}
	return subs, nil
}
