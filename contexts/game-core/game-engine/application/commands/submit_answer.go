package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "tiebreak/contexts/game-core/game-engine/application"
	"tiebreak/contexts/game-core/game-engine/domain/entities"
	domainerrors "tiebreak/contexts/game-core/game-engine/domain/errors"
	"tiebreak/contexts/game-core/game-engine/ports"
)

// SubmitAnswerCommand is the write-model input for answer submission.
type SubmitAnswerCommand struct {
	ParticipantID  string
	QuestionID     string
	SelectedOption string
	Password       string
}

// SubmitAnswerResult carries the accepted answer and its scoring outcome.
type SubmitAnswerResult struct {
	Answer        entities.Answer
	IsCorrect     bool
	PointsAwarded int
	Message       string
}

// SubmitUseCase runs the submission pipeline and the orchestrator's
// completion check.
type SubmitUseCase struct {
	Answers      ports.AnswerRepository
	Participants ports.ParticipantDirectory
	Questions    ports.QuestionCatalog
	TieBreaker   ports.TieBreaker
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	Notifier     ports.Notifier
	Logger       *slog.Logger
}

func (uc SubmitUseCase) SubmitAnswer(ctx context.Context, cmd SubmitAnswerCommand) (SubmitAnswerResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	participantID := strings.TrimSpace(cmd.ParticipantID)
	questionID := strings.TrimSpace(cmd.QuestionID)
	selected := strings.TrimSpace(cmd.SelectedOption)

	if participantID == "" || questionID == "" || selected == "" {
		return SubmitAnswerResult{}, domainerrors.ErrInvalidInput
	}

	if _, err := uc.Participants.Authenticate(ctx, participantID, cmd.Password); err != nil {
		logger.Warn("answer submission rejected",
			"event", "game_answer_auth_failed",
			"module", "game-core/game-engine",
			"layer", "application",
			"participant_id", participantID,
			"question_id", questionID,
		)
		return SubmitAnswerResult{}, err
	}

	isCorrect, points, err := uc.Questions.CheckAnswer(ctx, questionID, selected)
	if err != nil {
		return SubmitAnswerResult{}, err
	}

	answerID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return SubmitAnswerResult{}, err
	}
	answer := entities.Answer{
		ID:             answerID,
		ParticipantID:  participantID,
		QuestionID:     questionID,
		SelectedOption: selected,
		IsCorrect:      isCorrect,
		AnsweredAt:     uc.now(),
	}
	if err := uc.Answers.SaveAnswer(ctx, answer); err != nil {
		return SubmitAnswerResult{}, err
	}

	awarded := 0
	if isCorrect {
		awarded = points
	}
	if _, err := uc.Participants.RecordAnswer(ctx, participantID, awarded); err != nil {
		return SubmitAnswerResult{}, err
	}

	message := "Wrong answer"
	if isCorrect {
		message = "Correct answer"
	}
	logger.Info("answer accepted",
		"event", "game_answer_accepted",
		"module", "game-core/game-engine",
		"layer", "application",
		"participant_id", participantID,
		"question_id", questionID,
		"is_correct", isCorrect,
		"points_awarded", awarded,
	)
	if uc.Notifier != nil {
		uc.Notifier.AnswerResult(ctx, participantID, questionID, isCorrect, awarded, message)
	}

	uc.runCompletionCheck(ctx)

	return SubmitAnswerResult{
		Answer:        answer,
		IsCorrect:     isCorrect,
		PointsAwarded: awarded,
		Message:       message,
	}, nil
}

// runCompletionCheck fires the tie-break hand-off once everyone has answered
// everything. Failures here never surface to the submitter.
func (uc SubmitUseCase) runCompletionCheck(ctx context.Context) {
	logger := application.ResolveLogger(uc.Logger)

	answers, err := uc.Answers.CountAnswers(ctx)
	if err != nil {
		uc.logCheckSkipped(logger, err)
		return
	}
	questions, err := uc.Questions.CountActiveQuestions(ctx)
	if err != nil {
		uc.logCheckSkipped(logger, err)
		return
	}
	participants, err := uc.Participants.CountParticipants(ctx)
	if err != nil {
		uc.logCheckSkipped(logger, err)
		return
	}

	if questions == 0 || participants == 0 || answers < questions*participants {
		return
	}

	logger.Info("round complete, invoking tie breaker",
		"event", "game_round_complete",
		"module", "game-core/game-engine",
		"layer", "application",
		"answers", answers,
		"questions", questions,
		"participants", participants,
	)
	if uc.TieBreaker == nil {
		return
	}
	if err := uc.TieBreaker.OpenSession(ctx); err != nil {
		logger.Warn("tie breaker hand-off failed",
			"event", "game_tie_breaker_failed",
			"module", "game-core/game-engine",
			"layer", "application",
			"error", err.Error(),
		)
	}
}

func (uc SubmitUseCase) logCheckSkipped(logger *slog.Logger, err error) {
	logger.Warn("completion check skipped",
		"event", "game_completion_check_skipped",
		"module", "game-core/game-engine",
		"layer", "application",
		"error", err.Error(),
	)
}

func (uc SubmitUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
