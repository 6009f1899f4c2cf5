package broadcast

import (
	"context"
	"log/slog"
	"time"

	"tiebreak/contexts/live-sessions/ranked-poll/domain/entities"
	"tiebreak/contexts/live-sessions/ranked-poll/ports"
	"tiebreak/internal/shared/events"
)

type Publisher interface {
	Publish(ctx context.Context, event events.Envelope) error
}

// Notifier maps poll lifecycle changes onto broadcast envelopes.
type Notifier struct {
	Bus    Publisher
	Logger *slog.Logger
}

func (n Notifier) PollActivated(ctx context.Context, poll entities.Poll) {
	n.publish(ctx, events.Envelope{
		Event:         events.EventPollActivated,
		Audience:      events.AudienceAll,
		OccurredAtUTC: time.Now().UTC(),
		Payload:       toPollPayload(poll),
	})
}

func (n Notifier) RankingUpdated(ctx context.Context, pollID string) {
	n.publish(ctx, events.Envelope{
		Event:         events.EventPollRankingUpdate,
		Audience:      events.AudienceAll,
		OccurredAtUTC: time.Now().UTC(),
		Payload:       events.PollRankingUpdatePayload{PollID: pollID},
	})
}

func (n Notifier) PollEnded(ctx context.Context, results ports.PollResults) {
	n.publish(ctx, events.Envelope{
		Event:         events.EventPollEnded,
		Audience:      events.AudienceAll,
		OccurredAtUTC: time.Now().UTC(),
		Payload: events.PollEndedPayload{
			PollID:  results.Poll.ID,
			Results: toResultsPayload(results),
		},
	})
}

func (n Notifier) publish(ctx context.Context, event events.Envelope) {
	if err := n.Bus.Publish(ctx, event); err != nil && n.Logger != nil {
		n.Logger.Warn("poll broadcast failed",
			"event", "poll_broadcast_failed",
			"module", "live-sessions/ranked-poll",
			"layer", "adapter",
			"broadcast_event", event.Event,
			"error", err.Error(),
		)
	}
}

func toPollPayload(poll entities.Poll) events.PollPayload {
	return events.PollPayload{
		ID:          poll.ID,
		Title:       poll.Title,
		Description: poll.Description,
		IsActive:    poll.IsActive,
		TimeLimit:   poll.TimeLimit,
		PollEndsAt:  poll.PollEndsAt,
		Status:      string(poll.Status),
	}
}

func toResultsPayload(results ports.PollResults) events.PollResultsPayload {
	entries := make([]events.PollResultEntry, 0, len(results.Results))
	for _, result := range results.Results {
		entries = append(entries, events.PollResultEntry{
			ParticipantID:   result.ParticipantID,
			ParticipantName: result.Name,
			AverageRank:     result.AverageRank,
			TotalPoints:     result.TotalPoints,
		})
	}
	eliminated := make([]events.PollEliminationEntry, 0, len(results.Eliminated))
	for _, result := range results.Eliminated {
		eliminated = append(eliminated, events.PollEliminationEntry{
			ParticipantID:   result.ParticipantID,
			ParticipantName: result.Name,
		})
	}
	return events.PollResultsPayload{
		Poll:                   toPollPayload(results.Poll),
		Results:                entries,
		EliminatedParticipants: eliminated,
	}
}

var _ ports.Notifier = Notifier{}
