package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "tiebreak/contexts/game-core/question-service/application"
	"tiebreak/contexts/game-core/question-service/domain/entities"
	domainerrors "tiebreak/contexts/game-core/question-service/domain/errors"
	"tiebreak/contexts/game-core/question-service/ports"
)

const defaultQuestionPoints = 10

// CreateQuestionCommand is the write-model input for question authoring.
type CreateQuestionCommand struct {
	QuestionText  string
	Options       map[string]string
	CorrectOption string
	Points        int
}

// QuestionUseCase owns question writes and the activation wave.
type QuestionUseCase struct {
	Questions ports.QuestionRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Notifier  ports.Notifier
	Logger    *slog.Logger
}

func (uc QuestionUseCase) Create(ctx context.Context, cmd CreateQuestionCommand) (entities.Question, error) {
	logger := application.ResolveLogger(uc.Logger)
	text := strings.TrimSpace(cmd.QuestionText)
	correct := strings.TrimSpace(cmd.CorrectOption)

	if text == "" || len(cmd.Options) < 2 {
		return entities.Question{}, domainerrors.ErrInvalidInput
	}
	if _, ok := cmd.Options[correct]; !ok {
		return entities.Question{}, domainerrors.ErrInvalidInput
	}

	points := cmd.Points
	if points <= 0 {
		points = defaultQuestionPoints
	}

	questionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Question{}, err
	}

	question := entities.Question{
		ID:            questionID,
		QuestionText:  text,
		Options:       cmd.Options,
		CorrectOption: correct,
		Points:        points,
		IsActive:      false,
		CreatedAt:     uc.now(),
	}
	if err := uc.Questions.SaveQuestion(ctx, question); err != nil {
		return entities.Question{}, err
	}

	logger.Info("question created",
		"event", "question_created",
		"module", "game-core/question-service",
		"layer", "application",
		"question_id", question.ID,
		"points", question.Points,
	)
	return question, nil
}

// ReleaseNext activates the oldest inactive question. The second return is
// false when the catalog has nothing left to release.
func (uc QuestionUseCase) ReleaseNext(ctx context.Context) (entities.Question, bool, error) {
	logger := application.ResolveLogger(uc.Logger)

	question, found, err := uc.Questions.OldestInactiveQuestion(ctx)
	if err != nil {
		return entities.Question{}, false, err
	}
	if !found {
		logger.Info("no inactive questions left to release",
			"event", "question_release_exhausted",
			"module", "game-core/question-service",
			"layer", "application",
		)
		return entities.Question{}, false, nil
	}

	question.IsActive = true
	if err := uc.Questions.SaveQuestion(ctx, question); err != nil {
		return entities.Question{}, false, err
	}

	logger.Info("question released",
		"event", "question_released",
		"module", "game-core/question-service",
		"layer", "application",
		"question_id", question.ID,
	)
	if uc.Notifier != nil {
		uc.Notifier.QuestionReleased(ctx, question)
	}
	return question, true, nil
}

// ResetAll deactivates everything, then reactivates the first question by
// creation order. Returns how many questions were active before the reset.
func (uc QuestionUseCase) ResetAll(ctx context.Context) (int, error) {
	logger := application.ResolveLogger(uc.Logger)

	reset, err := uc.Questions.DeactivateAllQuestions(ctx)
	if err != nil {
		return 0, err
	}
	if _, err := uc.ensureFirstActive(ctx); err != nil {
		return 0, err
	}

	logger.Info("questions reset",
		"event", "questions_reset",
		"module", "game-core/question-service",
		"layer", "application",
		"reset", reset,
	)
	if uc.Notifier != nil {
		uc.Notifier.QuestionsReset(ctx, reset)
	}
	return reset, nil
}

// EnsureFirstActive is the idempotent bootstrap helper: when nothing is
// active, the oldest question becomes active.
func (uc QuestionUseCase) EnsureFirstActive(ctx context.Context) (bool, error) {
	return uc.ensureFirstActive(ctx)
}

func (uc QuestionUseCase) ensureFirstActive(ctx context.Context) (bool, error) {
	active, err := uc.Questions.CountActiveQuestions(ctx)
	if err != nil {
		return false, err
	}
	if active > 0 {
		return false, nil
	}

	question, found, err := uc.Questions.OldestInactiveQuestion(ctx)
	if err != nil || !found {
		return false, err
	}
	question.IsActive = true
	if err := uc.Questions.SaveQuestion(ctx, question); err != nil {
		return false, err
	}
	return true, nil
}

func (uc QuestionUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
