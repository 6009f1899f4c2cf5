package httptransport

import "time"

type SubmitAnswerRequest struct {
	ParticipantID  string `json:"participant_id"`
	QuestionID     string `json:"question_id"`
	SelectedOption string `json:"selected_option"`
	Password       string `json:"password"`
}

type SubmitAnswerResponse struct {
	Success       bool   `json:"success"`
	IsCorrect     bool   `json:"is_correct"`
	PointsAwarded int    `json:"points_awarded"`
	Message       string `json:"message"`
}

type AnswerResponse struct {
	ID             string    `json:"id"`
	QuestionID     string    `json:"question_id"`
	SelectedOption string    `json:"selected_option"`
	IsCorrect      bool      `json:"is_correct"`
	AnsweredAt     time.Time `json:"answered_at"`
}

type ParticipantAnswersResponse struct {
	ParticipantID string           `json:"participant_id"`
	Answers       []AnswerResponse `json:"answers"`
}
