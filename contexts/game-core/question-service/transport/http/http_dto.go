package httptransport

import "time"

type CreateQuestionRequest struct {
	QuestionText  string            `json:"question_text"`
	Options       map[string]string `json:"options"`
	CorrectOption string            `json:"correct_option"`
	Points        int               `json:"points,omitempty"`
}

// QuestionResponse is the participant-facing projection. The correct option
// only appears in the admin projection.
type QuestionResponse struct {
	ID           string            `json:"id"`
	QuestionText string            `json:"question_text"`
	Options      map[string]string `json:"options"`
	Points       int               `json:"points"`
	IsActive     bool              `json:"is_active"`
	CreatedAt    time.Time         `json:"created_at"`
}

type AdminQuestionResponse struct {
	QuestionResponse
	CorrectOption string `json:"correct_option"`
}

type QuestionListResponse struct {
	Questions []QuestionResponse `json:"questions"`
}

type AdminQuestionListResponse struct {
	Questions []AdminQuestionResponse `json:"questions"`
}

type ReleaseNextResponse struct {
	Released bool              `json:"released"`
	Question *QuestionResponse `json:"question,omitempty"`
}

type ResetQuestionsResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	QuestionsReset int    `json:"questions_reset"`
}
