package submission

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrSubmissionNotFound = errors.New("submission not found")

// SubjectTotal is the per-subject rollup of one user's submissions.
type SubjectTotal struct {
	Subject     string `json:"subject"`
	Count       int64  `json:"count"`
	TotalScore  int64  `json:"total_score"`
	TotalPoints int64  `json:"total_points"`
}

type SubmissionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, s *Submission) error
	Exists(ctx context.Context, tx *gorm.DB, quizID, userID uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Submission, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*Submission, error)
	ListByQuiz(ctx context.Context, quizID uuid.UUID) ([]*Submission, error)

	SubmittedBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]time.Time, error)
	SubjectTotals(ctx context.Context, userID uuid.UUID) ([]SubjectTotal, error)
	HasScoreAtLeast(ctx context.Context, userID uuid.UUID, score int) (bool, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx)
}

// Create inserts the submission and then its answers.
func (r *submissionRepository) Create(ctx context.Context, tx *gorm.DB, s *Submission) error {
	return r.conn(ctx, tx).Create(s).Error
}

func (r *submissionRepository) Exists(ctx context.Context, tx *gorm.DB, quizID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.conn(ctx, tx).
		Model(&Submission{}).
		Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *submissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*Submission, error) {
	var s Submission
	err := r.db.WithContext(ctx).
		Preload("Quiz").
		Preload("Answers.Question.Choices").
		Preload("Answers.SelectedChoice").
		First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByUser returns newest first. A limit <= 0 means no limit.
func (r *submissionRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*Submission, error) {
	var subs []*Submission
	q := r.db.WithContext(ctx).
		Preload("Quiz").
		Where("user_id = ?", userID).
		Order("submitted_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&subs).Error
	return subs, err
}

func (r *submissionRepository) ListByQuiz(ctx context.Context, quizID uuid.UUID) ([]*Submission, error) {
	var subs []*Submission
	err := r.db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("score DESC").
		Order("submitted_at ASC").
		Find(&subs).Error
	return subs, err
}

func (r *submissionRepository) SubmittedBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]time.Time, error) {
	var times []time.Time
	err := r.db.WithContext(ctx).
		Model(&Submission{}).
		Where("user_id = ? AND submitted_at >= ? AND submitted_at < ?", userID, from, to).
		Pluck("submitted_at", &times).Error
	return times, err
}

func (r *submissionRepository) SubjectTotals(ctx context.Context, userID uuid.UUID) ([]SubjectTotal, error) {
	var totals []SubjectTotal
	err := r.db.WithContext(ctx).
		Table("submissions").
		Select("quizzes.subject AS subject, COUNT(*) AS count, COALESCE(SUM(submissions.score), 0) AS total_score, COALESCE(SUM(submissions.total_points), 0) AS total_points").
		Joins("JOIN quizzes ON quizzes.id = submissions.quiz_id").
		Where("submissions.user_id = ?", userID).
		Group("quizzes.subject").
		Order("quizzes.subject").
		Scan(&totals).Error
	return totals, err
}

func (r *submissionRepository) HasScoreAtLeast(ctx context.Context, userID uuid.UUID, score int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Submission{}).
		Where("user_id = ? AND score >= ?", userID, score).
		Count(&count).Error
	return count > 0, err
}
