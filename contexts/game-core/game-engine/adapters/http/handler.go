package httpadapter

import (
	"context"
	"errors"
	"log/slog"

	"tiebreak/contexts/game-core/game-engine/application/commands"
	"tiebreak/contexts/game-core/game-engine/application/queries"
	domainerrors "tiebreak/contexts/game-core/game-engine/domain/errors"
	httptransport "tiebreak/contexts/game-core/game-engine/transport/http"
)

type Handler struct {
	Submissions commands.SubmitUseCase
	Answers     queries.AnswerUseCase
	Logger      *slog.Logger
}

// SubmitAnswerHandler maps submission outcomes onto the success-flag shape:
// rule failures come back as success=false with a message, not transport
// errors.
func (h Handler) SubmitAnswerHandler(ctx context.Context, req httptransport.SubmitAnswerRequest) (httptransport.SubmitAnswerResponse, error) {
	result, err := h.Submissions.SubmitAnswer(ctx, commands.SubmitAnswerCommand{
		ParticipantID:  req.ParticipantID,
		QuestionID:     req.QuestionID,
		SelectedOption: req.SelectedOption,
		Password:       req.Password,
	})
	if err != nil {
		if message, ok := submitFailureMessage(err); ok {
			return httptransport.SubmitAnswerResponse{Success: false, Message: message}, nil
		}
		return httptransport.SubmitAnswerResponse{}, err
	}
	return httptransport.SubmitAnswerResponse{
		Success:       true,
		IsCorrect:     result.IsCorrect,
		PointsAwarded: result.PointsAwarded,
		Message:       result.Message,
	}, nil
}

func (h Handler) ParticipantAnswersHandler(ctx context.Context, participantID string) (httptransport.ParticipantAnswersResponse, error) {
	answers, err := h.Answers.ParticipantAnswers(ctx, participantID)
	if err != nil {
		return httptransport.ParticipantAnswersResponse{}, err
	}
	items := make([]httptransport.AnswerResponse, 0, len(answers))
	for _, answer := range answers {
		items = append(items, httptransport.AnswerResponse{
			ID:             answer.ID,
			QuestionID:     answer.QuestionID,
			SelectedOption: answer.SelectedOption,
			IsCorrect:      answer.IsCorrect,
			AnsweredAt:     answer.AnsweredAt,
		})
	}
	return httptransport.ParticipantAnswersResponse{
		ParticipantID: participantID,
		Answers:       items,
	}, nil
}

func submitFailureMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, domainerrors.ErrInvalidCredential):
		return "Invalid credentials", true
	case errors.Is(err, domainerrors.ErrParticipantNotFound):
		return "Participant not found", true
	case errors.Is(err, domainerrors.ErrQuestionNotFound):
		return "Question not found or not active", true
	case errors.Is(err, domainerrors.ErrDuplicateAnswer):
		return "You have already answered this question", true
	case errors.Is(err, domainerrors.ErrInvalidInput):
		return "Invalid answer submission", true
	default:
		return "", false
	}
}
