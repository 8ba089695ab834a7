package feedback

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/quizmaster/internal/quiz"
	"gorm.io/gorm"
)

type QuizFeedback struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_feedback_quiz_user" json:"quiz_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_feedback_quiz_user;index" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Quiz *quiz.Quiz `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"-"`
}

func (QuizFeedback) TableName() string {
	return "quiz_feedback"
}

func (f *QuizFeedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

type Summary struct {
	QuizID        uuid.UUID `json:"quiz_id"`
	AverageRating float64   `json:"average_rating"`
	Count         int64     `json:"count"`
}
