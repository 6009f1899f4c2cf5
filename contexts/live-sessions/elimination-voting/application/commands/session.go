package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "tiebreak/contexts/live-sessions/elimination-voting/application"
	"tiebreak/contexts/live-sessions/elimination-voting/domain/entities"
	domainerrors "tiebreak/contexts/live-sessions/elimination-voting/domain/errors"
	"tiebreak/contexts/live-sessions/elimination-voting/ports"
)

const defaultVotingWindow = 60 * time.Second

// SubmitVoteCommand is the write-model input for an elimination vote.
type SubmitVoteCommand struct {
	SessionID string
	VoterID   string
	TargetID  string
	Password  string
}

// SessionUseCase drives the elimination session state machine: open, vote,
// close, cancel.
type SessionUseCase struct {
	Sessions     ports.SessionRepository
	Votes        ports.VoteRepository
	Participants ports.ParticipantDirectory
	Scheduler    ports.Scheduler
	Rand         ports.Rand
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	Notifier     ports.Notifier
	VotingWindow time.Duration
	Logger       *slog.Logger
}

// OpenSession checks the leaderboard for a tie and opens a session when one
// exists. An active session for the same tied score is returned as-is; a
// different score supersedes it. The bool reports whether a new session was
// opened by this call.
func (uc SessionUseCase) OpenSession(ctx context.Context) (entities.VotingSession, bool, error) {
	logger := application.ResolveLogger(uc.Logger)

	standings, err := uc.Participants.Standings(ctx)
	if err != nil {
		return entities.VotingSession{}, false, err
	}
	tied, tiedScore, found := entities.DetectTie(standings)
	if !found {
		return entities.VotingSession{}, false, nil
	}

	if existing, active, err := uc.Sessions.ActiveSession(ctx); err != nil {
		return entities.VotingSession{}, false, err
	} else if active {
		if existing.TiedScore == tiedScore {
			return existing, false, nil
		}
		// The standings moved under the open session; supersede it.
		if _, err := uc.Cancel(ctx, existing.ID); err != nil {
			return entities.VotingSession{}, false, err
		}
	}

	sessionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.VotingSession{}, false, err
	}

	now := uc.now()
	window := uc.votingWindow()
	session := entities.VotingSession{
		ID:                  sessionID,
		TiedParticipants:    tied,
		TiedScore:           tiedScore,
		Status:              entities.SessionStatusActive,
		VotingTimeInSeconds: int(window / time.Second),
		VotingEndsAt:        now.Add(window),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.Sessions.SaveSession(ctx, session); err != nil {
		return entities.VotingSession{}, false, err
	}

	if uc.Scheduler != nil {
		uc.Scheduler.Arm(session.ID, window, func() {
			if _, err := uc.Close(context.Background(), session.ID); err != nil {
				application.ResolveLogger(uc.Logger).Error("scheduled session close failed",
					"event", "voting_scheduled_close_failed",
					"module", "live-sessions/elimination-voting",
					"layer", "application",
					"session_id", session.ID,
					"error", err.Error(),
				)
			}
		})
	}

	logger.Info("voting session opened",
		"event", "voting_session_opened",
		"module", "live-sessions/elimination-voting",
		"layer", "application",
		"session_id", session.ID,
		"tied_score", tiedScore,
		"tied_participants", len(tied),
	)
	if uc.Notifier != nil {
		uc.Notifier.SessionStarted(ctx, session, uc.tiedRecords(ctx, session))
	}
	return session, true, nil
}

// SubmitVote validates the ordered eligibility chain and upserts the voter's
// choice. The stored deadline decides expiry, not the timer.
func (uc SessionUseCase) SubmitVote(ctx context.Context, cmd SubmitVoteCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	sessionID := strings.TrimSpace(cmd.SessionID)
	voterID := strings.TrimSpace(cmd.VoterID)
	targetID := strings.TrimSpace(cmd.TargetID)

	if sessionID == "" || voterID == "" || targetID == "" {
		return domainerrors.ErrInvalidInput
	}
	if _, err := uc.Participants.Authenticate(ctx, voterID, cmd.Password); err != nil {
		return err
	}

	session, err := uc.Sessions.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.Status != entities.SessionStatusActive {
		return domainerrors.ErrSessionEnded
	}
	if uc.now().After(session.VotingEndsAt) {
		return domainerrors.ErrVotingExpired
	}
	if !session.Contains(voterID) {
		return domainerrors.ErrNotEligible
	}
	if !session.Contains(targetID) {
		return domainerrors.ErrInvalidTarget
	}
	if voterID == targetID {
		return domainerrors.ErrSelfVote
	}

	voteID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	if err := uc.Votes.UpsertVote(ctx, entities.Vote{
		ID:                  voteID,
		VotingSessionID:     sessionID,
		VoterParticipantID:  voterID,
		TargetParticipantID: targetID,
		CreatedAt:           uc.now(),
	}); err != nil {
		return err
	}

	logger.Info("elimination vote registered",
		"event", "voting_vote_registered",
		"module", "live-sessions/elimination-voting",
		"layer", "application",
		"session_id", sessionID,
		"voter_id", voterID,
	)
	if uc.Notifier != nil {
		uc.Notifier.VoteRegistered(ctx, sessionID)
	}
	return nil
}

// Close completes an active session and applies the elimination. The
// compare-and-set on status makes concurrent closers collapse to one winner;
// losers no-op.
func (uc SessionUseCase) Close(ctx context.Context, sessionID string) (entities.VotingSession, error) {
	logger := application.ResolveLogger(uc.Logger)

	if uc.Scheduler != nil {
		uc.Scheduler.Cancel(strings.TrimSpace(sessionID))
	}

	session, won, err := uc.Sessions.TransitionStatus(ctx,
		strings.TrimSpace(sessionID),
		entities.SessionStatusActive,
		entities.SessionStatusCompleted,
		uc.now(),
	)
	if err != nil {
		return entities.VotingSession{}, err
	}
	if !won {
		return session, nil
	}

	results, eliminatedID, err := uc.tally(ctx, session)
	if err != nil {
		// The session stays completed; the tally is recomputable on demand.
		logger.Error("session tally failed",
			"event", "voting_session_tally_failed",
			"module", "live-sessions/elimination-voting",
			"layer", "application",
			"session_id", session.ID,
			"error", err.Error(),
		)
		return session, nil
	}

	if eliminatedID != "" {
		if _, err := uc.Participants.AdjustScore(ctx, eliminatedID, -1); err != nil {
			logger.Error("elimination penalty failed",
				"event", "voting_penalty_failed",
				"module", "live-sessions/elimination-voting",
				"layer", "application",
				"session_id", session.ID,
				"participant_id", eliminatedID,
				"error", err.Error(),
			)
		}
		if err := uc.Sessions.SetEliminated(ctx, session.ID, eliminatedID, uc.now()); err != nil {
			logger.Error("recording eliminated participant failed",
				"event", "voting_set_eliminated_failed",
				"module", "live-sessions/elimination-voting",
				"layer", "application",
				"session_id", session.ID,
				"error", err.Error(),
			)
		}
		session.EliminatedParticipantID = eliminatedID
		results.Session = session
	}

	logger.Info("voting session closed",
		"event", "voting_session_closed",
		"module", "live-sessions/elimination-voting",
		"layer", "application",
		"session_id", session.ID,
		"total_votes", results.TotalVotes,
		"eliminated_participant_id", eliminatedID,
	)
	if uc.Notifier != nil {
		uc.Notifier.SessionEnded(ctx, results)
	}
	return session, nil
}

// Cancel voids a session without a tally, whatever state it is in.
func (uc SessionUseCase) Cancel(ctx context.Context, sessionID string) (entities.VotingSession, error) {
	logger := application.ResolveLogger(uc.Logger)
	id := strings.TrimSpace(sessionID)

	if uc.Scheduler != nil {
		uc.Scheduler.Cancel(id)
	}

	session, err := uc.Sessions.GetSession(ctx, id)
	if err != nil {
		return entities.VotingSession{}, err
	}
	if session.Status == entities.SessionStatusCancelled {
		return session, nil
	}

	session, err = uc.Sessions.ForceStatus(ctx, id, entities.SessionStatusCancelled, uc.now())
	if err != nil {
		return entities.VotingSession{}, err
	}

	logger.Info("voting session cancelled",
		"event", "voting_session_cancelled",
		"module", "live-sessions/elimination-voting",
		"layer", "application",
		"session_id", session.ID,
	)
	if uc.Notifier != nil {
		uc.Notifier.SessionCancelled(ctx, session.ID)
	}
	return session, nil
}

func (uc SessionUseCase) tally(ctx context.Context, session entities.VotingSession) (ports.SessionResults, string, error) {
	votes, err := uc.Votes.ListVotes(ctx, session.ID)
	if err != nil {
		return ports.SessionResults{}, "", err
	}

	voteCount, total := entities.TallyVotes(session, votes)
	leaders, maxVotes := entities.VoteLeaders(voteCount, session.TiedParticipants)

	eliminatedID := ""
	if maxVotes > 0 {
		if len(leaders) == 1 {
			eliminatedID = leaders[0]
		} else {
			eliminatedID = leaders[uc.pick(len(leaders))]
		}
	}

	results := ports.SessionResults{
		Session:    session,
		VoteCount:  voteCount,
		TotalVotes: total,
	}
	if eliminatedID != "" {
		if record, err := uc.Participants.Get(ctx, eliminatedID); err == nil {
			results.Eliminated = &record
		} else {
			results.Eliminated = &ports.ParticipantRecord{ID: eliminatedID}
		}
	}
	return results, eliminatedID, nil
}

func (uc SessionUseCase) tiedRecords(ctx context.Context, session entities.VotingSession) []ports.ParticipantRecord {
	records := make([]ports.ParticipantRecord, 0, len(session.TiedParticipants))
	for _, id := range session.TiedParticipants {
		record, err := uc.Participants.Get(ctx, id)
		if err != nil {
			record = ports.ParticipantRecord{ID: id, Score: session.TiedScore}
		}
		records = append(records, record)
	}
	return records
}

func (uc SessionUseCase) pick(n int) int {
	if uc.Rand == nil || n <= 1 {
		return 0
	}
	return uc.Rand.Intn(n)
}

func (uc SessionUseCase) votingWindow() time.Duration {
	if uc.VotingWindow <= 0 {
		return defaultVotingWindow
	}
	return uc.VotingWindow
}

func (uc SessionUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
