package queries

import (
	"context"
	"strings"

	"tiebreak/contexts/game-core/participant-service/domain/entities"
	"tiebreak/contexts/game-core/participant-service/ports"
)

const leaderboardSize = 10

// LeaderboardUseCase serves the participant read model.
type LeaderboardUseCase struct {
	Participants ports.ParticipantRepository
}

func (uc LeaderboardUseCase) Get(ctx context.Context, participantID string) (entities.Participant, error) {
	return uc.Participants.GetParticipant(ctx, strings.TrimSpace(participantID))
}

func (uc LeaderboardUseCase) List(ctx context.Context) ([]entities.Participant, error) {
	return uc.Participants.ListParticipants(ctx)
}

// Leaderboard returns the top entries by score descending, creation ascending
// as the stable tiebreak.
func (uc LeaderboardUseCase) Leaderboard(ctx context.Context) ([]entities.Participant, error) {
	participants, err := uc.Participants.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}
	if len(participants) > leaderboardSize {
		participants = participants[:leaderboardSize]
	}
	return participants, nil
}

func (uc LeaderboardUseCase) Count(ctx context.Context) (int, error) {
	return uc.Participants.CountParticipants(ctx)
}
