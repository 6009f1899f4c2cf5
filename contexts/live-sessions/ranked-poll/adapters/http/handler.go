package httpadapter

import (
	"context"
	"errors"
	"log/slog"

	"tiebreak/contexts/live-sessions/ranked-poll/application/commands"
	"tiebreak/contexts/live-sessions/ranked-poll/application/queries"
	"tiebreak/contexts/live-sessions/ranked-poll/domain/entities"
	domainerrors "tiebreak/contexts/live-sessions/ranked-poll/domain/errors"
	"tiebreak/contexts/live-sessions/ranked-poll/ports"
	httptransport "tiebreak/contexts/live-sessions/ranked-poll/transport/http"
)

type Handler struct {
	Polls   commands.PollUseCase
	Results queries.ResultsUseCase
	Logger  *slog.Logger
}

func (h Handler) CreatePollHandler(ctx context.Context, req httptransport.CreatePollRequest) (httptransport.PollResponse, error) {
	poll, err := h.Polls.Create(ctx, commands.CreatePollCommand{
		Title:       req.Title,
		Description: req.Description,
		TimeLimit:   req.TimeLimit,
	})
	if err != nil {
		return httptransport.PollResponse{}, err
	}
	return toPollResponse(poll), nil
}

func (h Handler) ActivatePollHandler(ctx context.Context, pollID string) (httptransport.PollResponse, error) {
	poll, err := h.Polls.Activate(ctx, pollID)
	if err != nil {
		return httptransport.PollResponse{}, err
	}
	return toPollResponse(poll), nil
}

// SubmitRankingsHandler maps rule failures onto the success-flag shape instead
// of transport errors.
func (h Handler) SubmitRankingsHandler(ctx context.Context, req httptransport.SubmitRankingsRequest) (httptransport.SubmitRankingsResponse, error) {
	entries := make([]commands.RankingEntry, 0, len(req.Rankings))
	for _, entry := range req.Rankings {
		entries = append(entries, commands.RankingEntry{
			RankedParticipantID: entry.RankedParticipantID,
			Rank:                entry.Rank,
		})
	}
	err := h.Polls.SubmitRankings(ctx, commands.SubmitRankingsCommand{
		PollID:   req.PollID,
		RankerID: req.RankerID,
		Password: req.Password,
		Rankings: entries,
	})
	if err != nil {
		if message, ok := rankingFailureMessage(err); ok {
			return httptransport.SubmitRankingsResponse{Success: false, Message: message}, nil
		}
		return httptransport.SubmitRankingsResponse{}, err
	}
	return httptransport.SubmitRankingsResponse{Success: true, Message: "Rankings submitted"}, nil
}

func (h Handler) EndPollHandler(ctx context.Context, pollID string) (httptransport.PollResponse, error) {
	poll, err := h.Polls.EndPoll(ctx, pollID)
	if err != nil {
		return httptransport.PollResponse{}, err
	}
	return toPollResponse(poll), nil
}

func (h Handler) DeletePollHandler(ctx context.Context, pollID string) (httptransport.DeletePollResponse, error) {
	if err := h.Polls.Delete(ctx, pollID); err != nil {
		return httptransport.DeletePollResponse{}, err
	}
	return httptransport.DeletePollResponse{Message: "Poll deleted"}, nil
}

func (h Handler) ActivePollHandler(ctx context.Context) (httptransport.ActivePollResponse, error) {
	poll, active, err := h.Results.ActivePoll(ctx)
	if err != nil {
		return httptransport.ActivePollResponse{}, err
	}
	if !active {
		return httptransport.ActivePollResponse{Active: false}, nil
	}
	resp := toPollResponse(poll)
	return httptransport.ActivePollResponse{Active: true, Poll: &resp}, nil
}

func (h Handler) GetPollHandler(ctx context.Context, pollID string) (httptransport.PollResponse, error) {
	poll, err := h.Results.Poll(ctx, pollID)
	if err != nil {
		return httptransport.PollResponse{}, err
	}
	return toPollResponse(poll), nil
}

func (h Handler) ListPollsHandler(ctx context.Context) (httptransport.PollListResponse, error) {
	polls, err := h.Results.ListPolls(ctx)
	if err != nil {
		return httptransport.PollListResponse{}, err
	}
	items := make([]httptransport.PollResponse, 0, len(polls))
	for _, poll := range polls {
		items = append(items, toPollResponse(poll))
	}
	return httptransport.PollListResponse{Polls: items}, nil
}

func (h Handler) ResultsHandler(ctx context.Context, pollID string) (httptransport.PollResultsResponse, error) {
	results, err := h.Results.Results(ctx, pollID)
	if err != nil {
		return httptransport.PollResultsResponse{}, err
	}
	return toResultsResponse(results), nil
}

func toPollResponse(poll entities.Poll) httptransport.PollResponse {
	return httptransport.PollResponse{
		ID:          poll.ID,
		Title:       poll.Title,
		Description: poll.Description,
		IsActive:    poll.IsActive,
		TimeLimit:   poll.TimeLimit,
		PollEndsAt:  poll.PollEndsAt,
		Status:      string(poll.Status),
		CreatedAt:   poll.CreatedAt,
	}
}

func toResultsResponse(results ports.PollResults) httptransport.PollResultsResponse {
	entries := make([]httptransport.PollResultResponse, 0, len(results.Results))
	for _, result := range results.Results {
		entries = append(entries, httptransport.PollResultResponse{
			ParticipantID:   result.ParticipantID,
			ParticipantName: result.Name,
			AverageRank:     result.AverageRank,
			TotalPoints:     result.TotalPoints,
		})
	}
	eliminated := make([]httptransport.PollEliminationResponse, 0, len(results.Eliminated))
	for _, result := range results.Eliminated {
		eliminated = append(eliminated, httptransport.PollEliminationResponse{
			ParticipantID:   result.ParticipantID,
			ParticipantName: result.Name,
		})
	}
	return httptransport.PollResultsResponse{
		Poll:                   toPollResponse(results.Poll),
		Results:                entries,
		EliminatedParticipants: eliminated,
	}
}

func rankingFailureMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, domainerrors.ErrInvalidCredential):
		return "Invalid credentials", true
	case errors.Is(err, domainerrors.ErrPollNotFound):
		return "Poll not found", true
	case errors.Is(err, domainerrors.ErrPollEnded):
		return "Poll is no longer active", true
	case errors.Is(err, domainerrors.ErrPollExpired):
		return "Poll time has expired", true
	case errors.Is(err, domainerrors.ErrSelfRank):
		return "You cannot rank yourself", true
	case errors.Is(err, domainerrors.ErrInvalidParticipant):
		return "Ranked participant not found", true
	case errors.Is(err, domainerrors.ErrInvalidInput):
		return "Invalid ranking submission", true
	default:
		return "", false
	}
}
