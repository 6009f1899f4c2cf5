package entities

import "time"

// Question is a quiz item. Options map option keys to display text; the
// correct key is never exposed through transport DTOs.
type Question struct {
	ID            string
	QuestionText  string
	Options       map[string]string
	CorrectOption string
	Points        int
	IsActive      bool
	CreatedAt     time.Time
}
