package queries

import (
	"context"
	"strings"

	"tiebreak/contexts/live-sessions/elimination-voting/domain/entities"
	"tiebreak/contexts/live-sessions/elimination-voting/ports"
)

// ResultsUseCase serves session reads and on-demand tallies.
type ResultsUseCase struct {
	Sessions     ports.SessionRepository
	Votes        ports.VoteRepository
	Participants ports.ParticipantDirectory
}

func (uc ResultsUseCase) Session(ctx context.Context, sessionID string) (entities.VotingSession, error) {
	return uc.Sessions.GetSession(ctx, strings.TrimSpace(sessionID))
}

func (uc ResultsUseCase) ActiveSession(ctx context.Context) (entities.VotingSession, bool, error) {
	return uc.Sessions.ActiveSession(ctx)
}

func (uc ResultsUseCase) ListSessions(ctx context.Context) ([]entities.VotingSession, error) {
	return uc.Sessions.ListSessions(ctx)
}

// Results recomputes the tally from stored votes. The eliminated participant
// comes from the session record, so the answer is stable after close.
func (uc ResultsUseCase) Results(ctx context.Context, sessionID string) (ports.SessionResults, error) {
	session, err := uc.Sessions.GetSession(ctx, strings.TrimSpace(sessionID))
	if err != nil {
		return ports.SessionResults{}, err
	}
	votes, err := uc.Votes.ListVotes(ctx, session.ID)
	if err != nil {
		return ports.SessionResults{}, err
	}

	voteCount, total := entities.TallyVotes(session, votes)
	results := ports.SessionResults{
		Session:    session,
		VoteCount:  voteCount,
		TotalVotes: total,
	}
	if session.EliminatedParticipantID != "" {
		if record, err := uc.Participants.Get(ctx, session.EliminatedParticipantID); err == nil {
			results.Eliminated = &record
		} else {
			results.Eliminated = &ports.ParticipantRecord{ID: session.EliminatedParticipantID}
		}
	}
	return results, nil
}
