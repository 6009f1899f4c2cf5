package httpadapter

import (
	"context"
	"errors"
	"log/slog"

	"tiebreak/contexts/game-core/participant-service/application/commands"
	"tiebreak/contexts/game-core/participant-service/application/queries"
	"tiebreak/contexts/game-core/participant-service/domain/entities"
	domainerrors "tiebreak/contexts/game-core/participant-service/domain/errors"
	httptransport "tiebreak/contexts/game-core/participant-service/transport/http"
)

type Handler struct {
	Participants commands.ParticipantUseCase
	Leaderboards queries.LeaderboardUseCase
	Logger       *slog.Logger
}

func (h Handler) RegisterHandler(ctx context.Context, req httptransport.RegisterParticipantRequest) (httptransport.ParticipantResponse, error) {
	participant, err := h.Participants.Register(ctx, commands.RegisterCommand{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return httptransport.ParticipantResponse{}, err
	}
	return toParticipantResponse(participant), nil
}

func (h Handler) LoginHandler(ctx context.Context, req httptransport.ParticipantLoginRequest) (httptransport.ParticipantLoginResponse, error) {
	participant, err := h.Participants.Login(ctx, commands.LoginCommand{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidCredential) {
			return httptransport.ParticipantLoginResponse{
				Success: false,
				Message: "Invalid name or password",
			}, nil
		}
		return httptransport.ParticipantLoginResponse{}, err
	}
	resp := toParticipantResponse(participant)
	return httptransport.ParticipantLoginResponse{
		Success:     true,
		Participant: &resp,
	}, nil
}

func (h Handler) GetParticipantHandler(ctx context.Context, participantID string) (httptransport.ParticipantResponse, error) {
	participant, err := h.Leaderboards.Get(ctx, participantID)
	if err != nil {
		return httptransport.ParticipantResponse{}, err
	}
	return toParticipantResponse(participant), nil
}

func (h Handler) ListParticipantsHandler(ctx context.Context) (httptransport.ParticipantListResponse, error) {
	participants, err := h.Leaderboards.List(ctx)
	if err != nil {
		return httptransport.ParticipantListResponse{}, err
	}
	return httptransport.ParticipantListResponse{
		Participants: toParticipantResponses(participants),
	}, nil
}

func (h Handler) LeaderboardHandler(ctx context.Context) (httptransport.LeaderboardResponse, error) {
	leaderboard, err := h.Leaderboards.Leaderboard(ctx)
	if err != nil {
		return httptransport.LeaderboardResponse{}, err
	}
	return httptransport.LeaderboardResponse{
		Leaderboard: toParticipantResponses(leaderboard),
	}, nil
}

func (h Handler) AdjustScoreHandler(ctx context.Context, participantID string, req httptransport.AdjustScoreRequest) (httptransport.ParticipantResponse, error) {
	participant, err := h.Participants.AdjustScore(ctx, participantID, req.Delta)
	if err != nil {
		return httptransport.ParticipantResponse{}, err
	}
	return toParticipantResponse(participant), nil
}

func (h Handler) WipeAllHandler(ctx context.Context) (httptransport.WipeParticipantsResponse, error) {
	removed, err := h.Participants.WipeAll(ctx)
	if err != nil {
		return httptransport.WipeParticipantsResponse{}, err
	}
	return httptransport.WipeParticipantsResponse{Success: true, Removed: removed}, nil
}

func toParticipantResponse(participant entities.Participant) httptransport.ParticipantResponse {
	return httptransport.ParticipantResponse{
		ID:                participant.ID,
		Name:              participant.Name,
		Score:             participant.Score,
		QuestionsAnswered: participant.QuestionsAnswered,
		CreatedAt:         participant.CreatedAt,
	}
}

func toParticipantResponses(participants []entities.Participant) []httptransport.ParticipantResponse {
	items := make([]httptransport.ParticipantResponse, 0, len(participants))
	for _, participant := range participants {
		items = append(items, toParticipantResponse(participant))
	}
	return items
}
