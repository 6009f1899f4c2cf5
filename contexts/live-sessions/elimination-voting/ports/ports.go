package ports

import (
	"context"
	"time"

	"tiebreak/contexts/live-sessions/elimination-voting/domain/entities"
)

type SessionRepository interface {
	SaveSession(ctx context.Context, session entities.VotingSession) error
	GetSession(ctx context.Context, sessionID string) (entities.VotingSession, error)
	ActiveSession(ctx context.Context) (entities.VotingSession, bool, error)
	// ListSessions returns newest first.
	ListSessions(ctx context.Context) ([]entities.VotingSession, error)
	ListExpiredActiveSessions(ctx context.Context, now time.Time) ([]entities.VotingSession, error)
	// TransitionStatus is a compare-and-set on status. The bool reports
	// whether this call performed the transition.
	TransitionStatus(ctx context.Context, sessionID string, from entities.SessionStatus, to entities.SessionStatus, at time.Time) (entities.VotingSession, bool, error)
	ForceStatus(ctx context.Context, sessionID string, to entities.SessionStatus, at time.Time) (entities.VotingSession, error)
	SetEliminated(ctx context.Context, sessionID string, participantID string, at time.Time) error
}

type VoteRepository interface {
	// UpsertVote keeps one vote per (session, voter), replacing the target
	// on re-vote.
	UpsertVote(ctx context.Context, vote entities.Vote) error
	ListVotes(ctx context.Context, sessionID string) ([]entities.Vote, error)
}

// ParticipantRecord is the directory projection carried in results payloads.
type ParticipantRecord struct {
	ID                string
	Name              string
	Score             int
	QuestionsAnswered int
}

// ParticipantDirectory is the module's view of the participant module.
type ParticipantDirectory interface {
	Authenticate(ctx context.Context, participantID string, password string) (ParticipantRecord, error)
	Get(ctx context.Context, participantID string) (ParticipantRecord, error)
	// Standings returns the full leaderboard, score descending.
	Standings(ctx context.Context) ([]entities.Standing, error)
	AdjustScore(ctx context.Context, participantID string, delta int) (ParticipantRecord, error)
}

// Scheduler arms the close callback for a session's deadline.
type Scheduler interface {
	Arm(id string, delay time.Duration, fn func())
	Cancel(id string)
}

// Rand supplies the uniform choice for vote ties.
type Rand interface {
	Intn(n int) int
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// SessionResults is the full tally for a session.
type SessionResults struct {
	Session    entities.VotingSession
	VoteCount  map[string]int
	TotalVotes int
	Eliminated *ParticipantRecord
}

type Notifier interface {
	SessionStarted(ctx context.Context, session entities.VotingSession, tied []ParticipantRecord)
	VoteRegistered(ctx context.Context, sessionID string)
	SessionEnded(ctx context.Context, results SessionResults)
	SessionCancelled(ctx context.Context, sessionID string)
}
