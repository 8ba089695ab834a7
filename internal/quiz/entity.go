package quiz

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	ShortAnswer    QuestionType = "short_answer"
)

var AllQuestionTypes = []QuestionType{MultipleChoice, TrueFalse, ShortAnswer}

func (t QuestionType) IsValid() bool {
	for _, v := range AllQuestionTypes {
		if t == v {
			return true
		}
	}
	return false
}

const (
	DefaultTimeLimit   = 30
	DefaultMaxAttempts = 3
)

type Quiz struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"creator_id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Subject     string    `gorm:"type:varchar(100);not null;default:'General';index" json:"subject"`
	TimeLimit   int       `gorm:"not null;default:30" json:"time_limit"`
	MaxAttempts int       `gorm:"not null;default:3" json:"max_attempts"`
	IsActive    bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Questions []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

type Question struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID      uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_question_quiz_order" json:"quiz_id"`
	Text        string       `gorm:"type:text;not null" json:"text"`
	Type        QuestionType `gorm:"type:varchar(20);not null" json:"type"`
	Order       int          `gorm:"column:display_order;not null;uniqueIndex:idx_question_quiz_order" json:"order"`
	Points      int          `gorm:"not null;default:1" json:"points"`
	Explanation *string      `gorm:"type:text" json:"explanation,omitempty"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`

	Choices []Choice `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"choices,omitempty"`
}

type Choice struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	Text       string    `gorm:"type:varchar(200);not null" json:"text"`
	IsCorrect  bool      `gorm:"not null;default:false" json:"is_correct,omitempty"`
}

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

func (c *Choice) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TotalPoints sums the point value of every question.
func (q *Quiz) TotalPoints() int {
	total := 0
	for _, question := range q.Questions {
		total += question.Points
	}
	return total
}

// CorrectChoices returns the choices flagged correct, in stored order.
func (q *Question) CorrectChoices() []Choice {
	var out []Choice
	for _, c := range q.Choices {
		if c.IsCorrect {
			out = append(out, c)
		}
	}
	return out
}

// WithoutAnswers returns a copy safe to show to quiz takers.
func (q *Quiz) WithoutAnswers() *Quiz {
	clone := *q
	clone.Questions = make([]Question, len(q.Questions))
	for i, question := range q.Questions {
		question.Explanation = nil
		choices := make([]Choice, len(question.Choices))
		for j, c := range question.Choices {
			c.IsCorrect = false
			choices[j] = c
		}
		if question.Type == ShortAnswer {
			choices = nil
		}
		question.Choices = choices
		clone.Questions[i] = question
	}
	return &clone
}
