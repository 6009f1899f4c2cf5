package broadcast

import (
	"context"
	"log/slog"
	"time"

	"tiebreak/internal/shared/events"
)

type Publisher interface {
	Publish(ctx context.Context, event events.Envelope) error
}

// Notifier delivers answer results to the submitting participant's room.
type Notifier struct {
	Bus    Publisher
	Logger *slog.Logger
}

func (n Notifier) AnswerResult(ctx context.Context, participantID string, questionID string, isCorrect bool, points int, message string) {
	err := n.Bus.Publish(ctx, events.Envelope{
		Event:         events.EventAnswerResult,
		Audience:      events.AudienceParticipant,
		ParticipantID: participantID,
		OccurredAtUTC: time.Now().UTC(),
		Payload: events.AnswerResultPayload{
			ParticipantID: participantID,
			QuestionID:    questionID,
			IsCorrect:     isCorrect,
			Points:        points,
			Message:       message,
		},
	})
	if err != nil && n.Logger != nil {
		n.Logger.Warn("answer result broadcast failed",
			"event", "game_broadcast_failed",
			"module", "game-core/game-engine",
			"layer", "adapter",
			"participant_id", participantID,
			"error", err.Error(),
		)
	}
}
