package entities

import "time"

// Answer is one participant's submission for one question. The pair
// (ParticipantID, QuestionID) is unique; the first answer wins.
type Answer struct {
	ID             string
	ParticipantID  string
	QuestionID     string
	SelectedOption string
	IsCorrect      bool
	AnsweredAt     time.Time
}
