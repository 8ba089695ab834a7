package quiz

type ChoiceDTO struct {
	Text      string `json:"text" validate:"required,max=200"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionDTO struct {
	Text        string      `json:"text" validate:"required"`
	Type        string      `json:"type" validate:"required,oneof=multiple_choice true_false short_answer"`
	Points      int         `json:"points" validate:"omitempty,min=1"`
	Explanation *string     `json:"explanation"`
	Choices     []ChoiceDTO `json:"choices" validate:"dive"`
}

type CreateQuizDTO struct {
	Title       string        `json:"title" validate:"required,max=200"`
	Description string        `json:"description"`
	Subject     string        `json:"subject" validate:"max=100"`
	TimeLimit   int           `json:"time_limit" validate:"omitempty,min=1"`
	MaxAttempts int           `json:"max_attempts" validate:"omitempty,min=1"`
	IsActive    *bool         `json:"is_active"`
	Questions   []QuestionDTO `json:"questions" validate:"dive"`
}

type UpdateQuizDTO struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	Subject     *string `json:"subject" validate:"omitempty,max=100"`
	TimeLimit   *int    `json:"time_limit" validate:"omitempty,min=1"`
	MaxAttempts *int    `json:"max_attempts" validate:"omitempty,min=1"`
	IsActive    *bool   `json:"is_active"`
}
