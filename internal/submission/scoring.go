package submission

import (
	"strings"

	"github.com/google/uuid"
	"github.com/saulo-duarte/quizmaster/internal/quiz"
)

// Evaluation is the outcome of scoring one set of answers against a quiz.
type Evaluation struct {
	Score       int
	TotalPoints int
	Answers     []Answer
}

// Evaluate scores submitted answers keyed by question id. Values are a choice id
// for multiple_choice and free text otherwise. Unanswered multiple_choice and
// short_answer questions produce no Answer; true_false always does.
func Evaluate(q *quiz.Quiz, submitted map[string]string) Evaluation {
	eval := Evaluation{TotalPoints: q.TotalPoints()}

	for i := range q.Questions {
		question := &q.Questions[i]
		value, answered := submitted[question.ID.String()]

		var answer *Answer
		switch question.Type {
		case quiz.MultipleChoice:
			answer = evaluateMultipleChoice(question, value)
		case quiz.TrueFalse:
			answer = evaluateTrueFalse(question, value)
		case quiz.ShortAnswer:
			if answered {
				answer = evaluateShortAnswer(question, value)
			}
		}
		if answer == nil {
			continue
		}

		answer.QuestionID = question.ID
		if answer.IsCorrect {
			eval.Score += question.Points
		}
		eval.Answers = append(eval.Answers, *answer)
	}
	return eval
}

func evaluateMultipleChoice(question *quiz.Question, value string) *Answer {
	choiceID, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return nil
	}
	for _, c := range question.Choices {
		if c.ID == choiceID {
			id := c.ID
			return &Answer{SelectedChoiceID: &id, IsCorrect: c.IsCorrect}
		}
	}
	return nil
}

func evaluateTrueFalse(question *quiz.Question, value string) *Answer {
	answer := &Answer{TextAnswer: value}
	correct := question.CorrectChoices()
	if len(correct) > 0 {
		answer.IsCorrect = value == correct[0].Text
	}
	return answer
}

func evaluateShortAnswer(question *quiz.Question, value string) *Answer {
	given := strings.TrimSpace(value)
	if given == "" {
		return nil
	}
	answer := &Answer{TextAnswer: given}
	for _, accepted := range question.CorrectChoices() {
		if strings.EqualFold(given, strings.TrimSpace(accepted.Text)) {
			answer.IsCorrect = true
			break
		}
	}
	return answer
}
