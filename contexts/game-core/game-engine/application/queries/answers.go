package queries

import (
	"context"
	"strings"

	"tiebreak/contexts/game-core/game-engine/domain/entities"
	"tiebreak/contexts/game-core/game-engine/ports"
)

// AnswerUseCase serves the answer read model.
type AnswerUseCase struct {
	Answers ports.AnswerRepository
}

// ParticipantAnswers returns a participant's answers newest first.
func (uc AnswerUseCase) ParticipantAnswers(ctx context.Context, participantID string) ([]entities.Answer, error) {
	return uc.Answers.ListAnswersByParticipant(ctx, strings.TrimSpace(participantID))
}
