package broadcast

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tiebreak/contexts/game-core/question-service/domain/entities"
	"tiebreak/internal/shared/events"
)

type Publisher interface {
	Publish(ctx context.Context, event events.Envelope) error
}

// Notifier maps catalog changes onto broadcast envelopes. The correct option
// stays server-side.
type Notifier struct {
	Bus    Publisher
	Logger *slog.Logger
}

func (n Notifier) QuestionReleased(ctx context.Context, question entities.Question) {
	n.publish(ctx, events.Envelope{
		Event:         events.EventQuestionReleased,
		Audience:      events.AudienceAll,
		OccurredAtUTC: time.Now().UTC(),
		Payload: events.QuestionPayload{
			ID:           question.ID,
			QuestionText: question.QuestionText,
			Options:      question.Options,
			Points:       question.Points,
		},
	})
}

func (n Notifier) QuestionsReset(ctx context.Context, reset int) {
	n.publish(ctx, events.Envelope{
		Event:         events.EventQuestionsReset,
		Audience:      events.AudienceAll,
		OccurredAtUTC: time.Now().UTC(),
		Payload: events.QuestionsResetPayload{
			Message:        fmt.Sprintf("%d questions reset", reset),
			QuestionsReset: reset,
		},
	})
}

func (n Notifier) publish(ctx context.Context, event events.Envelope) {
	if err := n.Bus.Publish(ctx, event); err != nil && n.Logger != nil {
		n.Logger.Warn("question broadcast failed",
			"event", "question_broadcast_failed",
			"module", "game-core/question-service",
			"layer", "adapter",
			"broadcast_event", event.Event,
			"error", err.Error(),
		)
	}
}
