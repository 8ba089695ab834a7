package streak

import (
	"time"

	"github.com/google/uuid"
	util "github.com/saulo-duarte/quizmaster/internal/utils"
	"gorm.io/gorm"
)

type StudyStreak struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"-"`
	CurrentStreak int       `gorm:"not null;default:0" json:"current_streak"`
	LongestStreak int       `gorm:"not null;default:0" json:"longest_streak"`
	LastActivity  util.Date `gorm:"type:date" json:"last_activity"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

func (s *StudyStreak) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
