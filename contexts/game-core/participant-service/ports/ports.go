package ports

import (
	"context"
	"time"

	"tiebreak/contexts/game-core/participant-service/domain/entities"
)

type ParticipantRepository interface {
	SaveParticipant(ctx context.Context, participant entities.Participant) error
	GetParticipant(ctx context.Context, participantID string) (entities.Participant, error)
	GetParticipantByName(ctx context.Context, name string) (entities.Participant, error)
	// ListParticipants returns score descending, creation ascending as the
	// stable tiebreak.
	ListParticipants(ctx context.Context) ([]entities.Participant, error)
	// ApplyScoreDelta adjusts score (clamped at zero) and the answered
	// counter in one step, returning the updated row.
	ApplyScoreDelta(ctx context.Context, participantID string, scoreDelta int, answeredDelta int) (entities.Participant, error)
	CountParticipants(ctx context.Context) (int, error)
	DeleteAllParticipants(ctx context.Context) (int, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Notifier pushes leaderboard changes to connected clients. Implementations
// must not block the caller; failures are the notifier's problem.
type Notifier interface {
	LeaderboardUpdated(ctx context.Context, leaderboard []entities.Participant)
}
