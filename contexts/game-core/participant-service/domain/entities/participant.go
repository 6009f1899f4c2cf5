package entities

import "time"

// Participant is a registered player. Score never goes below zero; every
// mutation clamps. QuestionsAnswered counts submitted answers regardless of
// correctness.
type Participant struct {
	ID                string
	Name              string
	PasswordHash      string
	Score             int
	QuestionsAnswered int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
