package queries

import (
	"context"
	"strings"

	"tiebreak/contexts/game-core/question-service/domain/entities"
	domainerrors "tiebreak/contexts/game-core/question-service/domain/errors"
	"tiebreak/contexts/game-core/question-service/ports"
)

// CatalogUseCase serves question reads and answer checking.
type CatalogUseCase struct {
	Questions ports.QuestionRepository
}

func (uc CatalogUseCase) ListActive(ctx context.Context) ([]entities.Question, error) {
	return uc.Questions.ListActiveQuestions(ctx)
}

func (uc CatalogUseCase) ListAll(ctx context.Context) ([]entities.Question, error) {
	return uc.Questions.ListAllQuestions(ctx)
}

// GetActive returns an active question; inactive ids read as not found so
// unreleased questions never leak.
func (uc CatalogUseCase) GetActive(ctx context.Context, questionID string) (entities.Question, error) {
	question, err := uc.Questions.GetQuestion(ctx, strings.TrimSpace(questionID))
	if err != nil {
		return entities.Question{}, err
	}
	if !question.IsActive {
		return entities.Question{}, domainerrors.ErrQuestionNotFound
	}
	return question, nil
}

// CheckAnswer reports correctness and the points at stake for the question.
func (uc CatalogUseCase) CheckAnswer(ctx context.Context, questionID string, selectedOption string) (bool, int, error) {
	question, err := uc.GetActive(ctx, questionID)
	if err != nil {
		return false, 0, err
	}
	correct := question.CorrectOption == strings.TrimSpace(selectedOption)
	return correct, question.Points, nil
}

func (uc CatalogUseCase) CountActive(ctx context.Context) (int, error) {
	return uc.Questions.CountActiveQuestions(ctx)
}
