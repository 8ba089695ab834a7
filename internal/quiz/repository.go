package quiz

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrQuestionNotFound = errors.New("question not found")
)

type QuizRepository interface {
	Create(ctx context.Context, q *Quiz) error
	GetByID(ctx context.Context, id uuid.UUID) (*Quiz, error)
	Update(ctx context.Context, q *Quiz) error
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	AddQuestion(ctx context.Context, question *Question) error
	NextQuestionOrder(ctx context.Context, quizID uuid.UUID) (int, error)
	GetQuestion(ctx context.Context, id uuid.UUID) (*Question, error)
	DeleteQuestion(ctx context.Context, id uuid.UUID) error

	ListAvailable(ctx context.Context, userID uuid.UUID, creatorUsername string) ([]*Quiz, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*Quiz, error)
	CountActive(ctx context.Context) (int64, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(ctx context.Context, q *Quiz) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *quizRepository) GetByID(ctx context.Context, id uuid.UUID) (*Quiz, error) {
	var quiz Quiz
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("Questions.Choices").
		First(&quiz, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) Update(ctx context.Context, q *Quiz) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(q).Error
}

func (r *quizRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Quiz{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrQuizNotFound
	}
	return nil
}

func (r *quizRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Quiz{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *quizRepository) AddQuestion(ctx context.Context, question *Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *quizRepository) NextQuestionOrder(ctx context.Context, quizID uuid.UUID) (int, error) {
	var maxOrder sql.NullInt64
	err := r.db.WithContext(ctx).
		Model(&Question{}).
		Where("quiz_id = ?", quizID).
		Select("MAX(display_order)").
		Scan(&maxOrder).Error
	if err != nil {
		return 0, err
	}
	if !maxOrder.Valid {
		return 1, nil
	}
	return int(maxOrder.Int64) + 1, nil
}

func (r *quizRepository) GetQuestion(ctx context.Context, id uuid.UUID) (*Question, error) {
	var question Question
	if err := r.db.WithContext(ctx).Preload("Choices").First(&question, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return &question, nil
}

func (r *quizRepository) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&Choice{}, "question_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&Question{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrQuestionNotFound
		}
		return nil
	})
}

// ListAvailable returns active quizzes the user has not submitted yet.
func (r *quizRepository) ListAvailable(ctx context.Context, userID uuid.UUID, creatorUsername string) ([]*Quiz, error) {
	var quizzes []*Quiz
	q := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("id NOT IN (?)", r.db.Table("submissions").Select("quiz_id").Where("user_id = ?", userID))

	if creatorUsername != "" {
		q = q.Where("creator_id IN (?)", r.db.Table("users").Select("id").Where("username = ?", creatorUsername))
	}

	if err := q.Order("created_at DESC").Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*Quiz, error) {
	var quizzes []*Quiz
	if err := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Quiz{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
