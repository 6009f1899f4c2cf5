package ports

import (
	"context"
	"time"

	"tiebreak/contexts/live-sessions/ranked-poll/domain/entities"
)

type PollRepository interface {
	SavePoll(ctx context.Context, poll entities.Poll) error
	GetPoll(ctx context.Context, pollID string) (entities.Poll, error)
	ActivePoll(ctx context.Context) (entities.Poll, bool, error)
	// ListPolls returns newest first.
	ListPolls(ctx context.Context) ([]entities.Poll, error)
	ListExpiredActivePolls(ctx context.Context, now time.Time) ([]entities.Poll, error)
	// CompleteIfActive is a compare-and-set: the poll moves to completed and
	// drops the active flag only when it is currently flagged active. The
	// bool reports whether this call performed the transition.
	CompleteIfActive(ctx context.Context, pollID string, at time.Time) (entities.Poll, bool, error)
	// CompleteOtherActivePolls force-completes every active poll except the
	// given one, returning how many it closed.
	CompleteOtherActivePolls(ctx context.Context, exceptPollID string, at time.Time) (int, error)
	DeletePoll(ctx context.Context, pollID string) error
}

type RankingRepository interface {
	// ReplaceRankings atomically swaps the ranker's set for the poll.
	ReplaceRankings(ctx context.Context, pollID string, rankerID string, rankings []entities.Ranking) error
	ListRankings(ctx context.Context, pollID string) ([]entities.Ranking, error)
	DeleteRankingsByPoll(ctx context.Context, pollID string) error
}

// ParticipantRecord is the directory projection for poll candidates.
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
	List(ctx context.Context) ([]ParticipantRecord, error)
	AdjustScore(ctx context.Context, participantID string, delta int) (ParticipantRecord, error)
}

type Scheduler interface {
	Arm(id string, delay time.Duration, fn func())
	Cancel(id string)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// PollResults is the aggregate outcome handed to notifier and transport.
type PollResults struct {
	Poll       entities.Poll
	Results    []entities.Result
	Eliminated []entities.Result
}

type Notifier interface {
	PollActivated(ctx context.Context, poll entities.Poll)
	RankingUpdated(ctx context.Context, pollID string)
	PollEnded(ctx context.Context, results PollResults)
}
