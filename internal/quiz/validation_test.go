package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func choices(flags ...bool) []Choice {
	out := make([]Choice, len(flags))
	for i, correct := range flags {
		out[i] = Choice{Text: "option", IsCorrect: correct}
	}
	return out
}

func TestValidateQuestion(t *testing.T) {
	tests := []struct {
		name     string
		question Question
		wantErr  error
	}{
		{"multiple choice ok", Question{Text: "q", Type: MultipleChoice, Points: 1, Choices: choices(true, false, false)}, nil},
		{"multiple choice two correct", Question{Text: "q", Type: MultipleChoice, Points: 1, Choices: choices(true, true)}, ErrInvalidChoices},
		{"multiple choice none correct", Question{Text: "q", Type: MultipleChoice, Points: 1, Choices: choices(false, false)}, ErrInvalidChoices},
		{"multiple choice single option", Question{Text: "q", Type: MultipleChoice, Points: 1, Choices: choices(true)}, ErrInvalidChoices},
		{"true false ok", Question{Text: "q", Type: TrueFalse, Points: 3, Choices: choices(false, true)}, nil},
		{"true false three options", Question{Text: "q", Type: TrueFalse, Points: 3, Choices: choices(true, false, false)}, ErrInvalidChoices},
		{"short answer ok", Question{Text: "q", Type: ShortAnswer, Points: 2, Choices: choices(true, true)}, nil},
		{"short answer without answers", Question{Text: "q", Type: ShortAnswer, Points: 2}, ErrInvalidChoices},
		{"zero points", Question{Text: "q", Type: TrueFalse, Points: 0, Choices: choices(true, false)}, ErrInvalidPoints},
		{"unknown type", Question{Text: "q", Type: "essay", Points: 1}, ErrInvalidQuestionType},
		{"blank text", Question{Text: "  ", Type: TrueFalse, Points: 1, Choices: choices(true, false)}, ErrInvalidQuestion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuestion(&tt.question)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestValidateQuiz(t *testing.T) {
	valid := Quiz{Title: "Math", TimeLimit: 30, MaxAttempts: 3}
	assert.NoError(t, ValidateQuiz(&valid))

	noTitle := valid
	noTitle.Title = " "
	assert.ErrorIs(t, ValidateQuiz(&noTitle), ErrInvalidQuiz)

	noTime := valid
	noTime.TimeLimit = 0
	assert.ErrorIs(t, ValidateQuiz(&noTime), ErrInvalidQuiz)

	badQuestion := valid
	badQuestion.Questions = []Question{{Text: "q", Type: MultipleChoice, Points: 1}}
	assert.ErrorIs(t, ValidateQuiz(&badQuestion), ErrInvalidChoices)
}

func TestWithoutAnswers(t *testing.T) {
	explanation := "because"
	q := &Quiz{
		Title: "Mixed",
		Questions: []Question{
			{Type: MultipleChoice, Explanation: &explanation, Choices: choices(true, false)},
			{Type: ShortAnswer, Choices: choices(true)},
		},
	}

	public := q.WithoutAnswers()

	for _, c := range public.Questions[0].Choices {
		assert.False(t, c.IsCorrect)
	}
	assert.Nil(t, public.Questions[0].Explanation)
	assert.Empty(t, public.Questions[1].Choices)

	// the source quiz keeps its answers
	assert.True(t, q.Questions[0].Choices[0].IsCorrect)
	assert.NotNil(t, q.Questions[0].Explanation)
}

func TestTotalPoints(t *testing.T) {
	q := &Quiz{Questions: []Question{{Points: 5}, {Points: 3}}}
	assert.Equal(t, 8, q.TotalPoints())
	assert.Equal(t, 0, (&Quiz{}).TotalPoints())
}
