package quiz

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/saulo-duarte/quizmaster/internal/auth"
	"github.com/saulo-duarte/quizmaster/internal/config"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidID    = errors.New("invalid id format")
)

type QuizService interface {
	CreateQuiz(ctx context.Context, dto CreateQuizDTO) (*Quiz, error)
	UpdateQuiz(ctx context.Context, quizID string, dto UpdateQuizDTO) (*Quiz, error)
	DeleteQuiz(ctx context.Context, quizID string) error
	AddQuestion(ctx context.Context, quizID string, dto QuestionDTO) (*Question, error)
	RemoveQuestion(ctx context.Context, questionID string) error
	GetQuiz(ctx context.Context, quizID string) (*Quiz, error)
	GetActiveQuiz(ctx context.Context, quizID uuid.UUID) (*Quiz, error)
	GetOwnedQuiz(ctx context.Context, quizID string) (*Quiz, error)
	ListAvailable(ctx context.Context, creatorUsername string) ([]*Quiz, error)
	ListMine(ctx context.Context) ([]*Quiz, error)
	CountActive(ctx context.Context) (int64, error)
	Exists(ctx context.Context, quizID uuid.UUID) (bool, error)
}

type quizService struct {
	repo QuizRepository
}

func NewService(repo QuizRepository) QuizService {
	return &quizService{repo: repo}
}

func currentClaims(ctx context.Context, log logrus.FieldLogger, action string) (*auth.Claims, uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		log.WithError(err).Warnf("Attempt to %s without authentication", action)
		return nil, uuid.Nil, ErrUnauthorized
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, uuid.Nil, ErrUnauthorized
	}
	return claims, id, nil
}

func parseUUID(log logrus.FieldLogger, id string, entityName string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		log.WithError(err).Warnf("Invalid %s ID", entityName)
		return uuid.Nil, ErrInvalidID
	}
	return parsed, nil
}

func questionFromDTO(dto QuestionDTO) Question {
	points := dto.Points
	if points == 0 {
		points = 1
	}
	q := Question{
		Text:        strings.TrimSpace(dto.Text),
		Type:        QuestionType(dto.Type),
		Points:      points,
		Explanation: dto.Explanation,
	}
	for _, c := range dto.Choices {
		q.Choices = append(q.Choices, Choice{Text: c.Text, IsCorrect: c.IsCorrect})
	}
	// every accepted short answer is correct by definition
	if q.Type == ShortAnswer {
		for i := range q.Choices {
			q.Choices[i].IsCorrect = true
		}
	}
	return q
}

func (s *quizService) CreateQuiz(ctx context.Context, dto CreateQuizDTO) (*Quiz, error) {
	log := config.WithContext(ctx)
	claims, userID, err := currentClaims(ctx, log, "create quiz")
	if err != nil {
		return nil, err
	}
	if !claims.IsAdmin() {
		log.Warn("Non-admin user tried to create a quiz")
		return nil, ErrForbidden
	}

	q := &Quiz{
		CreatorID:   userID,
		Title:       strings.TrimSpace(dto.Title),
		Description: dto.Description,
		Subject:     strings.TrimSpace(dto.Subject),
		TimeLimit:   dto.TimeLimit,
		MaxAttempts: dto.MaxAttempts,
		IsActive:    true,
	}
	if q.Subject == "" {
		q.Subject = "General"
	}
	if q.TimeLimit == 0 {
		q.TimeLimit = DefaultTimeLimit
	}
	if q.MaxAttempts == 0 {
		q.MaxAttempts = DefaultMaxAttempts
	}
	if dto.IsActive != nil {
		q.IsActive = *dto.IsActive
	}
	for i, qd := range dto.Questions {
		question := questionFromDTO(qd)
		question.Order = i + 1
		q.Questions = append(q.Questions, question)
	}

	if err := ValidateQuiz(q); err != nil {
		log.WithError(err).Warn("Quiz failed validation")
		return nil, err
	}

	if err := s.repo.Create(ctx, q); err != nil {
		log.WithError(err).Error("Failed to create quiz")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"quiz_id":   q.ID,
		"questions": len(q.Questions),
	}).Info("Quiz created successfully")
	return q, nil
}

func (s *quizService) GetOwnedQuiz(ctx context.Context, quizID string) (*Quiz, error) {
	log := config.WithContext(ctx)
	_, userID, err := currentClaims(ctx, log, "manage quiz")
	if err != nil {
		return nil, err
	}

	id, err := parseUUID(log, quizID, "quiz")
	if err != nil {
		return nil, err
	}

	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrQuizNotFound) {
			log.WithError(err).Error("Error finding quiz by ID")
		}
		return nil, err
	}
	if q.CreatorID != userID {
		log.WithField("quiz_id", id).Warn("Quiz does not belong to user")
		return nil, ErrForbidden
	}
	return q, nil
}

func (s *quizService) UpdateQuiz(ctx context.Context, quizID string, dto UpdateQuizDTO) (*Quiz, error) {
	log := config.WithContext(ctx)
	q, err := s.GetOwnedQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	if dto.Title != nil {
		q.Title = strings.TrimSpace(*dto.Title)
	}
	if dto.Description != nil {
		q.Description = *dto.Description
	}
	if dto.Subject != nil && strings.TrimSpace(*dto.Subject) != "" {
		q.Subject = strings.TrimSpace(*dto.Subject)
	}
	if dto.TimeLimit != nil {
		q.TimeLimit = *dto.TimeLimit
	}
	if dto.MaxAttempts != nil {
		q.MaxAttempts = *dto.MaxAttempts
	}
	if dto.IsActive != nil {
		q.IsActive = *dto.IsActive
	}

	if err := ValidateQuiz(q); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, q); err != nil {
		log.WithError(err).Error("Failed to update quiz")
		return nil, err
	}

	log.WithField("quiz_id", q.ID).Info("Quiz updated successfully")
	return q, nil
}

func (s *quizService) DeleteQuiz(ctx context.Context, quizID string) error {
	log := config.WithContext(ctx)
	q, err := s.GetOwnedQuiz(ctx, quizID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, q.ID); err != nil {
		log.WithError(err).Error("Failed to delete quiz")
		return err
	}

	log.WithField("quiz_id", q.ID).Info("Quiz deleted successfully")
	return nil
}

func (s *quizService) AddQuestion(ctx context.Context, quizID string, dto QuestionDTO) (*Question, error) {
	log := config.WithContext(ctx)
	q, err := s.GetOwnedQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	question := questionFromDTO(dto)
	question.QuizID = q.ID
	if err := ValidateQuestion(&question); err != nil {
		log.WithError(err).Warn("Question failed validation")
		return nil, err
	}

	order, err := s.repo.NextQuestionOrder(ctx, q.ID)
	if err != nil {
		log.WithError(err).Error("Failed to compute question order")
		return nil, err
	}
	question.Order = order

	if err := s.repo.AddQuestion(ctx, &question); err != nil {
		log.WithError(err).Error("Failed to add question")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"quiz_id":     q.ID,
		"question_id": question.ID,
	}).Info("Question added successfully")
	return &question, nil
}

func (s *quizService) RemoveQuestion(ctx context.Context, questionID string) error {
	log := config.WithContext(ctx)
	id, err := parseUUID(log, questionID, "question")
	if err != nil {
		return err
	}

	question, err := s.repo.GetQuestion(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.GetOwnedQuiz(ctx, question.QuizID.String()); err != nil {
		return err
	}

	if err := s.repo.DeleteQuestion(ctx, id); err != nil {
		log.WithError(err).Error("Failed to remove question")
		return err
	}

	log.WithField("question_id", id).Info("Question removed successfully")
	return nil
}

// GetQuiz hides correct answers unless the caller authored the quiz.
func (s *quizService) GetQuiz(ctx context.Context, quizID string) (*Quiz, error) {
	log := config.WithContext(ctx)
	_, userID, err := currentClaims(ctx, log, "view quiz")
	if err != nil {
		return nil, err
	}

	id, err := parseUUID(log, quizID, "quiz")
	if err != nil {
		return nil, err
	}

	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.CreatorID == userID {
		return q, nil
	}
	if !q.IsActive {
		return nil, ErrQuizNotFound
	}
	return q.WithoutAnswers(), nil
}

func (s *quizService) GetActiveQuiz(ctx context.Context, quizID uuid.UUID) (*Quiz, error) {
	q, err := s.repo.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if !q.IsActive {
		return nil, ErrQuizNotFound
	}
	return q, nil
}

func (s *quizService) ListAvailable(ctx context.Context, creatorUsername string) ([]*Quiz, error) {
	log := config.WithContext(ctx)
	_, userID, err := currentClaims(ctx, log, "list quizzes")
	if err != nil {
		return nil, err
	}

	quizzes, err := s.repo.ListAvailable(ctx, userID, strings.TrimSpace(creatorUsername))
	if err != nil {
		log.WithError(err).Error("Failed to list available quizzes")
		return nil, err
	}
	return quizzes, nil
}

func (s *quizService) ListMine(ctx context.Context) ([]*Quiz, error) {
	log := config.WithContext(ctx)
	_, userID, err := currentClaims(ctx, log, "list own quizzes")
	if err != nil {
		return nil, err
	}

	quizzes, err := s.repo.ListByCreator(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to list quizzes by creator")
		return nil, err
	}
	return quizzes, nil
}

func (s *quizService) CountActive(ctx context.Context) (int64, error) {
	return s.repo.CountActive(ctx)
}

func (s *quizService) Exists(ctx context.Context, quizID uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, quizID)
}
