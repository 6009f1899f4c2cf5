package ports

import (
	"context"
	"time"

	"tiebreak/contexts/game-core/question-service/domain/entities"
)

type QuestionRepository interface {
	SaveQuestion(ctx context.Context, question entities.Question) error
	GetQuestion(ctx context.Context, questionID string) (entities.Question, error)
	ListActiveQuestions(ctx context.Context) ([]entities.Question, error)
	// ListAllQuestions returns creation ascending so the activation wave is
	// deterministic.
	ListAllQuestions(ctx context.Context) ([]entities.Question, error)
	OldestInactiveQuestion(ctx context.Context) (entities.Question, bool, error)
	DeactivateAllQuestions(ctx context.Context) (int, error)
	CountActiveQuestions(ctx context.Context) (int, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type Notifier interface {
	QuestionReleased(ctx context.Context, question entities.Question)
	QuestionsReset(ctx context.Context, reset int)
}
