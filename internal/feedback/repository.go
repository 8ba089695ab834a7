package feedback

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeedbackRepository interface {
	Upsert(ctx context.Context, f *QuizFeedback) (created bool, err error)
	Summary(ctx context.Context, quizID uuid.UUID) (*Summary, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

// Upsert inserts the feedback and, when (quiz, user) already has one, updates it instead.
func (r *feedbackRepository) Upsert(ctx context.Context, f *QuizFeedback) (bool, error) {
	err := r.db.WithContext(ctx).Create(f).Error
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&QuizFeedback{}).
		Where("quiz_id = ? AND user_id = ?", f.QuizID, f.UserID).
		Updates(map[string]interface{}{
			"rating":  f.Rating,
			"comment": f.Comment,
		})
	return false, result.Error
}

func (r *feedbackRepository) Summary(ctx context.Context, quizID uuid.UUID) (*Summary, error) {
	var row struct {
		Average float64
		Count   int64
	}
	err := r.db.WithContext(ctx).
		Model(&QuizFeedback{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("quiz_id = ?", quizID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &Summary{QuizID: quizID, AverageRating: row.Average, Count: row.Count}, nil
}

func (r *feedbackRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&QuizFeedback{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
