package submission

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/quizmaster/internal/quiz"
	"gorm.io/gorm"
)

// Submission is one user's scored attempt at one quiz. At most one exists per (quiz, user).
type Submission struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_submission_quiz_user" json:"quiz_id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_submission_quiz_user;index" json:"user_id"`
	Score            int       `gorm:"not null;default:0" json:"score"`
	TotalPoints      int       `gorm:"not null;default:0" json:"total_points"`
	SubmittedAt      time.Time `gorm:"not null;index" json:"submitted_at"`
	TimeTakenSeconds *int64    `json:"time_taken_seconds,omitempty"`

	Percentage float64 `gorm:"-" json:"percentage"`

	Quiz    *quiz.Quiz `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"quiz,omitempty"`
	Answers []Answer   `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

type Answer struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SubmissionID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"submission_id"`
	QuestionID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"question_id"`
	SelectedChoiceID *uuid.UUID `gorm:"type:uuid" json:"selected_choice_id,omitempty"`
	TextAnswer       string     `gorm:"type:text" json:"text_answer,omitempty"`
	IsCorrect        bool       `gorm:"not null;default:false" json:"is_correct"`

	Question       *quiz.Question `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"question,omitempty"`
	SelectedChoice *quiz.Choice   `gorm:"foreignKey:SelectedChoiceID;constraint:OnDelete:CASCADE" json:"selected_choice,omitempty"`
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.SubmittedAt.IsZero() {
		s.SubmittedAt = time.Now().UTC()
	}
	return nil
}

func (s *Submission) AfterFind(tx *gorm.DB) error {
	s.Percentage = s.PercentageScore()
	return nil
}

func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// PercentageScore is score/total*100 rounded to two decimals, or 0 without points.
func (s *Submission) PercentageScore() float64 {
	return Percentage(s.Score, s.TotalPoints)
}

func Percentage(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(score)/float64(total)*100*100) / 100
}
