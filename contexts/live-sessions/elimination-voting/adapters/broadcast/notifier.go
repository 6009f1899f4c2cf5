package broadcast

import (
	"context"
	"log/slog"
	"time"

	"tiebreak/contexts/live-sessions/elimination-voting/domain/entities"
	"tiebreak/contexts/live-sessions/elimination-voting/ports"
	"tiebreak/internal/shared/events"
)

type Publisher interface {
	Publish(ctx context.Context, event events.Envelope) error
}

// Notifier maps session lifecycle changes onto broadcast envelopes.
type Notifier struct {
	Bus    Publisher
	Logger *slog.Logger
}

func (n Notifier) SessionStarted(ctx context.Context, session entities.VotingSession, tied []ports.ParticipantRecord) {
	n.publish(ctx, events.Envelope{
		Event:         events.EventVotingSessionStarted,
		Audience:      events.AudienceAll,
		OccurredAtUTC: time.Now().UTC(),
		Payload: events.VotingSessionStartedPayload{
			VotingSession:    toSessionPayload(session),
			TiedParticipants: toParticipantRecords(tied),
		},
	})
}

func (n Notifier) VoteRegistered(ctx context.Context, sessionID string) {
	n.publish(ctx, events.Envelope{
		Event:         events.EventVoteUpdate,
		Audience:      events.AudienceAll,
		OccurredAtUTC: time.Now().UTC(),
		Payload:       events.VoteUpdatePayload{VotingSessionID: sessionID},
	})
}

func (n Notifier) SessionEnded(ctx context.Context, results ports.SessionResults) {
	payload := events.VotingResultsPayload{
		VotingSession: toSessionPayload(results.Session),
		VoteCount:     results.VoteCount,
		TotalVotes:    results.TotalVotes,
	}
	if results.Eliminated != nil {
		record := toParticipantRecord(*results.Eliminated)
		payload.EliminatedParticipant = &record
	}
	n.publish(ctx, events.Envelope{
		Event:         events.EventVotingSessionEnded,
		Audience:      events.AudienceAll,
		OccurredAtUTC: time.Now().UTC(),
		Payload: events.VotingSessionEndedPayload{
			SessionID: results.Session.ID,
			Results:   payload,
		},
	})
}

func (n Notifier) SessionCancelled(ctx context.Context, sessionID string) {
	n.publish(ctx, events.Envelope{
		Event:         events.EventVotingSessionCancelled,
		Audience:      events.AudienceAll,
		OccurredAtUTC: time.Now().UTC(),
		Payload:       events.VotingSessionCancelledPayload{SessionID: sessionID},
	})
}

func (n Notifier) publish(ctx context.Context, event events.Envelope) {
	if err := n.Bus.Publish(ctx, event); err != nil && n.Logger != nil {
		n.Logger.Warn("voting broadcast failed",
			"event", "voting_broadcast_failed",
			"module", "live-sessions/elimination-voting",
			"layer", "adapter",
			"broadcast_event", event.Event,
			"error", err.Error(),
		)
	}
}

func toSessionPayload(session entities.VotingSession) events.VotingSessionPayload {
	return events.VotingSessionPayload{
		ID:                      session.ID,
		TiedParticipants:        session.TiedParticipants,
		TiedScore:               session.TiedScore,
		Status:                  string(session.Status),
		VotingTimeInSeconds:     session.VotingTimeInSeconds,
		VotingEndsAt:            session.VotingEndsAt,
		EliminatedParticipantID: session.EliminatedParticipantID,
	}
}

func toParticipantRecord(record ports.ParticipantRecord) events.ParticipantRecord {
	return events.ParticipantRecord{
		ID:                record.ID,
		Name:              record.Name,
		Score:             record.Score,
		QuestionsAnswered: record.QuestionsAnswered,
	}
}

func toParticipantRecords(records []ports.ParticipantRecord) []events.ParticipantRecord {
	items := make([]events.ParticipantRecord, 0, len(records))
	for _, record := range records {
		items = append(items, toParticipantRecord(record))
	}
	return items
}
