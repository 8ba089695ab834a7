package streak

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StreakRepository interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*StudyStreak, error)
	Save(ctx context.Context, s *StudyStreak) error
}

type streakRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) StreakRepository {
	return &streakRepository{db: db}
}

func (r *streakRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*StudyStreak, error) {
	var s StudyStreak
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&s).Error
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	s = StudyStreak{UserID: userID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&s).Error; err != nil {
		return nil, err
	}

	// another request may have won the insert
	var stored StudyStreak
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *streakRepository) Save(ctx context.Context, s *StudyStreak) error {
	return r.db.WithContext(ctx).
		Model(&StudyStreak{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"current_streak": s.CurrentStreak,
			"longest_streak": s.LongestStreak,
			"last_activity":  s.LastActivity,
		}).Error
}
