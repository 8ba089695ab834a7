package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*Profile, error)
	ApplySubmission(ctx context.Context, tx *gorm.DB, userID uuid.UUID, score int) error
	Update(ctx context.Context, p *Profile) error
	CountHigherScores(ctx context.Context, score int) (int64, error)
	Top(ctx context.Context, limit int) ([]*Profile, error)
	QuizzesTaken(ctx context.Context, userID uuid.UUID) (int, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx)
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*Profile, error) {
	db := r.conn(ctx, tx)

	p := Profile{UserID: userID}
	if err := db.
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&p).Error; err != nil {
		return nil, err
	}

	var stored Profile
	if err := db.Where("user_id = ?", userID).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// ApplySubmission adds one quiz and score to the totals in a single UPDATE.
func (r *profileRepository) ApplySubmission(ctx context.Context, tx *gorm.DB, userID uuid.UUID, score int) error {
	if _, err := r.GetOrCreate(ctx, tx, userID); err != nil {
		return err
	}

	return r.conn(ctx, tx).
		Model(&Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"total_quizzes_taken": gorm.Expr("total_quizzes_taken + ?", 1),
			"total_score":         gorm.Expr("total_score + ?", score),
			"last_activity":       time.Now().UTC(),
		}).Error
}

func (r *profileRepository) Update(ctx context.Context, p *Profile) error {
	return r.db.WithContext(ctx).
		Model(&Profile{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"bio":           p.Bio,
			"location":      p.Location,
			"website":       p.Website,
			"preferences":   p.Preferences,
			"last_activity": p.LastActivity,
		}).Error
}

func (r *profileRepository) CountHigherScores(ctx context.Context, score int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Profile{}).
		Where("total_quizzes_taken > 0 AND total_score > ?", score).
		Count(&count).Error
	return count, err
}

func (r *profileRepository) Top(ctx context.Context, limit int) ([]*Profile, error) {
	var list []*Profile
	err := r.db.WithContext(ctx).
		Where("total_quizzes_taken > 0").
		Order("total_score DESC").
		Order("joined_date ASC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *profileRepository) QuizzesTaken(ctx context.Context, userID uuid.UUID) (int, error) {
	p, err := r.GetByUserID(ctx, userID)
	if errors.Is(err, ErrProfileNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return p.TotalQuizzesTaken, nil
}
