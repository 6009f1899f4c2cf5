package broadcast

import (
	"context"
	"log/slog"
	"time"

	"tiebreak/contexts/game-core/participant-service/domain/entities"
	"tiebreak/internal/shared/events"
)

// Publisher is the bus surface the notifier needs.
type Publisher interface {
	Publish(ctx context.Context, event events.Envelope) error
}

// Notifier maps participant changes onto broadcast envelopes.
type Notifier struct {
	Bus    Publisher
	Logger *slog.Logger
}

func (n Notifier) LeaderboardUpdated(ctx context.Context, leaderboard []entities.Participant) {
	records := make([]events.ParticipantRecord, 0, len(leaderboard))
	for _, participant := range leaderboard {
		records = append(records, events.ParticipantRecord{
			ID:                participant.ID,
			Name:              participant.Name,
			Score:             participant.Score,
			QuestionsAnswered: participant.QuestionsAnswered,
		})
	}
	err := n.Bus.Publish(ctx, events.Envelope{
		Event:         events.EventLeaderboardUpdate,
		Audience:      events.AudienceAll,
		OccurredAtUTC: time.Now().UTC(),
		Payload:       records,
	})
	if err != nil && n.Logger != nil {
		n.Logger.Warn("leaderboard broadcast failed",
			"event", "participant_broadcast_failed",
			"module", "game-core/participant-service",
			"layer", "adapter",
			"error", err.Error(),
		)
	}
}
