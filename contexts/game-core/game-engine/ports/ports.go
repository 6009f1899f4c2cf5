package ports

import (
	"context"
	"time"

	"tiebreak/contexts/game-core/game-engine/domain/entities"
)

type AnswerRepository interface {
	// SaveAnswer persists a new answer. A duplicate (participant, question)
	// pair fails with ErrDuplicateAnswer, including on a concurrent race.
	SaveAnswer(ctx context.Context, answer entities.Answer) error
	ListAnswersByParticipant(ctx context.Context, participantID string) ([]entities.Answer, error)
	CountAnswers(ctx context.Context) (int, error)
}

// ParticipantRecord is the directory projection the engine works with.
type ParticipantRecord struct {
	ID                string
	Name              string
	Score             int
	QuestionsAnswered int
}

// ParticipantDirectory is the engine's view of the participant module.
type ParticipantDirectory interface {
	Authenticate(ctx context.Context, participantID string, password string) (ParticipantRecord, error)
	// RecordAnswer counts one answer and credits points (zero when wrong).
	RecordAnswer(ctx context.Context, participantID string, points int) (ParticipantRecord, error)
	CountParticipants(ctx context.Context) (int, error)
}

// QuestionCatalog is the engine's view of the question module.
type QuestionCatalog interface {
	CheckAnswer(ctx context.Context, questionID string, selectedOption string) (bool, int, error)
	CountActiveQuestions(ctx context.Context) (int, error)
}

// TieBreaker opens an elimination voting session when the completion check
// finds a tie at the top. Opening is idempotent on the callee side.
type TieBreaker interface {
	OpenSession(ctx context.Context) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type Notifier interface {
	AnswerResult(ctx context.Context, participantID string, questionID string, isCorrect bool, points int, message string)
}
