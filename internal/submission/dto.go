package submission

// SubmitQuizRequest maps question ids to a choice id (multiple_choice) or free text.
type SubmitQuizRequest struct {
	Answers          map[string]string `json:"answers"`
	TimeTakenSeconds *int64            `json:"time_taken_seconds,omitempty" validate:"omitempty,min=0"`
}
