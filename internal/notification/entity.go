package notification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Type string

const (
	TypeAchievement Type = "achievement"
	TypeQuizResult  Type = "quiz_result"
	TypeRankChange  Type = "rank_change"
	TypeNewQuiz     Type = "new_quiz"
	TypeSystem      Type = "system"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeAchievement, TypeQuizResult, TypeRankChange, TypeNewQuiz, TypeSystem:
		return true
	}
	return false
}

type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_notification_user_read" json:"-"`
	Type      Type      `gorm:"type:varchar(20);not null" json:"type"`
	Title     string    `gorm:"type:varchar(200);not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	IsRead    bool      `gorm:"not null;default:false;index:idx_notification_user_read" json:"is_read"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
