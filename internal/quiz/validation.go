package quiz

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidQuiz         = errors.New("invalid quiz")
	ErrInvalidQuestion     = errors.New("invalid question")
	ErrInvalidQuestionType = fmt.Errorf("%w: unknown type", ErrInvalidQuestion)
	ErrInvalidPoints       = fmt.Errorf("%w: points must be at least 1", ErrInvalidQuestion)
	ErrInvalidChoices      = fmt.Errorf("%w: choices do not match the question type", ErrInvalidQuestion)
)

// IsValidationError reports whether err came from quiz or question validation.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidQuiz) || errors.Is(err, ErrInvalidQuestion)
}

// ValidateQuestion checks the choice invariants of each question type.
// multiple_choice: at least two choices, exactly one correct.
// true_false: exactly two choices, exactly one correct.
// short_answer: at least one accepted answer, all flagged correct.
func ValidateQuestion(q *Question) error {
	if !q.Type.IsValid() {
		return ErrInvalidQuestionType
	}
	if q.Points < 1 {
		return ErrInvalidPoints
	}
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: text is required", ErrInvalidQuestion)
	}

	correct := len(q.CorrectChoices())
	switch q.Type {
	case MultipleChoice:
		if len(q.Choices) < 2 || correct != 1 {
			return fmt.Errorf("%w (multiple_choice needs at least 2 choices and exactly one correct)", ErrInvalidChoices)
		}
	case TrueFalse:
		if len(q.Choices) != 2 || correct != 1 {
			return fmt.Errorf("%w (true_false needs exactly 2 choices and exactly one correct)", ErrInvalidChoices)
		}
	case ShortAnswer:
		if len(q.Choices) == 0 || correct != len(q.Choices) {
			return fmt.Errorf("%w (short_answer needs accepted answers, all marked correct)", ErrInvalidChoices)
		}
	}
	return nil
}

func ValidateQuiz(q *Quiz) error {
	if strings.TrimSpace(q.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidQuiz)
	}
	if q.TimeLimit < 1 {
		return fmt.Errorf("%w: time_limit must be at least 1", ErrInvalidQuiz)
	}
	if q.MaxAttempts < 1 {
		return fmt.Errorf("%w: max_attempts must be at least 1", ErrInvalidQuiz)
	}
	for i := range q.Questions {
		if err := ValidateQuestion(&q.Questions[i]); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}
