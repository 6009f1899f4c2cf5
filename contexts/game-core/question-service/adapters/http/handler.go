package httpadapter

import (
	"context"
	"fmt"
	"log/slog"

	"tiebreak/contexts/game-core/question-service/application/commands"
	"tiebreak/contexts/game-core/question-service/application/queries"
	"tiebreak/contexts/game-core/question-service/domain/entities"
	httptransport "tiebreak/contexts/game-core/question-service/transport/http"
)

type Handler struct {
	Questions commands.QuestionUseCase
	Catalog   queries.CatalogUseCase
	Logger    *slog.Logger
}

func (h Handler) CreateQuestionHandler(ctx context.Context, req httptransport.CreateQuestionRequest) (httptransport.AdminQuestionResponse, error) {
	question, err := h.Questions.Create(ctx, commands.CreateQuestionCommand{
		QuestionText:  req.QuestionText,
		Options:       req.Options,
		CorrectOption: req.CorrectOption,
		Points:        req.Points,
	})
	if err != nil {
		return httptransport.AdminQuestionResponse{}, err
	}
	return toAdminQuestionResponse(question), nil
}

func (h Handler) ListActiveHandler(ctx context.Context) (httptransport.QuestionListResponse, error) {
	questions, err := h.Catalog.ListActive(ctx)
	if err != nil {
		return httptransport.QuestionListResponse{}, err
	}
	return httptransport.QuestionListResponse{Questions: toQuestionResponses(questions)}, nil
}

func (h Handler) ListAllHandler(ctx context.Context) (httptransport.AdminQuestionListResponse, error) {
	questions, err := h.Catalog.ListAll(ctx)
	if err != nil {
		return httptransport.AdminQuestionListResponse{}, err
	}
	items := make([]httptransport.AdminQuestionResponse, 0, len(questions))
	for _, question := range questions {
		items = append(items, toAdminQuestionResponse(question))
	}
	return httptransport.AdminQuestionListResponse{Questions: items}, nil
}

func (h Handler) GetQuestionHandler(ctx context.Context, questionID string) (httptransport.QuestionResponse, error) {
	question, err := h.Catalog.GetActive(ctx, questionID)
	if err != nil {
		return httptransport.QuestionResponse{}, err
	}
	return toQuestionResponse(question), nil
}

func (h Handler) ReleaseNextHandler(ctx context.Context) (httptransport.ReleaseNextResponse, error) {
	question, released, err := h.Questions.ReleaseNext(ctx)
	if err != nil {
		return httptransport.ReleaseNextResponse{}, err
	}
	if !released {
		return httptransport.ReleaseNextResponse{Released: false}, nil
	}
	resp := toQuestionResponse(question)
	return httptransport.ReleaseNextResponse{Released: true, Question: &resp}, nil
}

func (h Handler) ResetAllHandler(ctx context.Context) (httptransport.ResetQuestionsResponse, error) {
	reset, err := h.Questions.ResetAll(ctx)
	if err != nil {
		return httptransport.ResetQuestionsResponse{}, err
	}
	return httptransport.ResetQuestionsResponse{
		Success:        true,
		Message:        fmt.Sprintf("%d questions reset", reset),
		QuestionsReset: reset,
	}, nil
}

func toQuestionResponse(question entities.Question) httptransport.QuestionResponse {
	return httptransport.QuestionResponse{
		ID:           question.ID,
		QuestionText: question.QuestionText,
		Options:      question.Options,
		Points:       question.Points,
		IsActive:     question.IsActive,
		CreatedAt:    question.CreatedAt,
	}
}

func toAdminQuestionResponse(question entities.Question) httptransport.AdminQuestionResponse {
	return httptransport.AdminQuestionResponse{
		QuestionResponse: toQuestionResponse(question),
		CorrectOption:    question.CorrectOption,
	}
}

func toQuestionResponses(questions []entities.Question) []httptransport.QuestionResponse {
	items := make([]httptransport.QuestionResponse, 0, len(questions))
	for _, question := range questions {
		items = append(items, toQuestionResponse(question))
	}
	return items
}
