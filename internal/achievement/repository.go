package achievement

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrAlreadyEarned = errors.New("achievement already earned")

type AchievementRepository interface {
	Seed(ctx context.Context, catalog []Achievement) error
	List(ctx context.Context) ([]Achievement, error)
	ListEarned(ctx context.Context, userID uuid.UUID) ([]*UserAchievement, error)
	Award(ctx context.Context, ua *UserAchievement) error
}

type achievementRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

// Seed inserts catalog entries by name, leaving existing rows untouched.
func (r *achievementRepository) Seed(ctx context.Context, catalog []Achievement) error {
	if len(catalog) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&catalog).Error
}

func (r *achievementRepository) List(ctx context.Context) ([]Achievement, error) {
	var list []Achievement
	err := r.db.WithContext(ctx).Order("requirement ASC").Order("name ASC").Find(&list).Error
	return list, err
}

func (r *achievementRepository) ListEarned(ctx context.Context, userID uuid.UUID) ([]*UserAchievement, error) {
	var earned []*UserAchievement
	err := r.db.WithContext(ctx).
		Preload("Achievement").
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&earned).Error
	return earned, err
}

func (r *achievementRepository) Award(ctx context.Context, ua *UserAchievement) error {
	err := r.db.WithContext(ctx).Create(ua).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyEarned
	}
	return err
}
