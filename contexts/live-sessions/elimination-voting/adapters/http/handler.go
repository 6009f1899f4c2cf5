package httpadapter

import (
	"context"
	"errors"
	"log/slog"

	"tiebreak/contexts/live-sessions/elimination-voting/application/commands"
	"tiebreak/contexts/live-sessions/elimination-voting/application/queries"
	"tiebreak/contexts/live-sessions/elimination-voting/domain/entities"
	domainerrors "tiebreak/contexts/live-sessions/elimination-voting/domain/errors"
	"tiebreak/contexts/live-sessions/elimination-voting/ports"
	httptransport "tiebreak/contexts/live-sessions/elimination-voting/transport/http"
)

type Handler struct {
	Sessions commands.SessionUseCase
	Results  queries.ResultsUseCase
	Logger   *slog.Logger
}

func (h Handler) OpenSessionHandler(ctx context.Context) (httptransport.OpenSessionResponse, error) {
	session, opened, err := h.Sessions.OpenSession(ctx)
	if err != nil {
		return httptransport.OpenSessionResponse{}, err
	}
	if session.ID == "" {
		return httptransport.OpenSessionResponse{
			Opened:  false,
			Message: "No tie detected",
		}, nil
	}
	resp := toSessionResponse(session)
	return httptransport.OpenSessionResponse{Opened: opened, Session: &resp}, nil
}

// SubmitVoteHandler maps rule failures onto the success-flag shape instead of
// transport errors.
func (h Handler) SubmitVoteHandler(ctx context.Context, req httptransport.SubmitVoteRequest) (httptransport.SubmitVoteResponse, error) {
	err := h.Sessions.SubmitVote(ctx, commands.SubmitVoteCommand{
		SessionID: req.SessionID,
		VoterID:   req.VoterID,
		TargetID:  req.TargetID,
		Password:  req.Password,
	})
	if err != nil {
		if message, ok := voteFailureMessage(err); ok {
			return httptransport.SubmitVoteResponse{Success: false, Message: message}, nil
		}
		return httptransport.SubmitVoteResponse{}, err
	}
	return httptransport.SubmitVoteResponse{Success: true, Message: "Vote registered"}, nil
}

func (h Handler) CloseSessionHandler(ctx context.Context, sessionID string) (httptransport.VotingSessionResponse, error) {
	session, err := h.Sessions.Close(ctx, sessionID)
	if err != nil {
		return httptransport.VotingSessionResponse{}, err
	}
	return toSessionResponse(session), nil
}

func (h Handler) CancelSessionHandler(ctx context.Context, sessionID string) (httptransport.VotingSessionResponse, error) {
	session, err := h.Sessions.Cancel(ctx, sessionID)
	if err != nil {
		return httptransport.VotingSessionResponse{}, err
	}
	return toSessionResponse(session), nil
}

func (h Handler) ActiveSessionHandler(ctx context.Context) (httptransport.ActiveSessionResponse, error) {
	session, active, err := h.Results.ActiveSession(ctx)
	if err != nil {
		return httptransport.ActiveSessionResponse{}, err
	}
	if !active {
		return httptransport.ActiveSessionResponse{Active: false}, nil
	}
	resp := toSessionResponse(session)
	return httptransport.ActiveSessionResponse{Active: true, Session: &resp}, nil
}

func (h Handler) GetSessionHandler(ctx context.Context, sessionID string) (httptransport.VotingSessionResponse, error) {
	session, err := h.Results.Session(ctx, sessionID)
	if err != nil {
		return httptransport.VotingSessionResponse{}, err
	}
	return toSessionResponse(session), nil
}

func (h Handler) ListSessionsHandler(ctx context.Context) (httptransport.SessionListResponse, error) {
	sessions, err := h.Results.ListSessions(ctx)
	if err != nil {
		return httptransport.SessionListResponse{}, err
	}
	items := make([]httptransport.VotingSessionResponse, 0, len(sessions))
	for _, session := range sessions {
		items = append(items, toSessionResponse(session))
	}
	return httptransport.SessionListResponse{Sessions: items}, nil
}

func (h Handler) ResultsHandler(ctx context.Context, sessionID string) (httptransport.VotingResultsResponse, error) {
	results, err := h.Results.Results(ctx, sessionID)
	if err != nil {
		return httptransport.VotingResultsResponse{}, err
	}
	return toResultsResponse(results), nil
}

func toSessionResponse(session entities.VotingSession) httptransport.VotingSessionResponse {
	return httptransport.VotingSessionResponse{
		ID:                      session.ID,
		TiedParticipants:        session.TiedParticipants,
		TiedScore:               session.TiedScore,
		Status:                  string(session.Status),
		VotingTimeInSeconds:     session.VotingTimeInSeconds,
		VotingEndsAt:            session.VotingEndsAt,
		EliminatedParticipantID: session.EliminatedParticipantID,
		CreatedAt:               session.CreatedAt,
	}
}

func toResultsResponse(results ports.SessionResults) httptransport.VotingResultsResponse {
	resp := httptransport.VotingResultsResponse{
		Session:    toSessionResponse(results.Session),
		VoteCount:  results.VoteCount,
		TotalVotes: results.TotalVotes,
	}
	if results.Eliminated != nil {
		resp.EliminatedParticipant = &httptransport.EliminatedParticipantResponse{
			ID:    results.Eliminated.ID,
			Name:  results.Eliminated.Name,
			Score: results.Eliminated.Score,
		}
	}
	return resp
}

func voteFailureMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, domainerrors.ErrInvalidCredential):
		return "Invalid credentials", true
	case errors.Is(err, domainerrors.ErrParticipantNotFound):
		return "Participant not found", true
	case errors.Is(err, domainerrors.ErrSessionNotFound):
		return "Voting session not found", true
	case errors.Is(err, domainerrors.ErrSessionEnded):
		return "Voting session is no longer active", true
	case errors.Is(err, domainerrors.ErrVotingExpired):
		return "Voting time has expired", true
	case errors.Is(err, domainerrors.ErrNotEligible):
		return "Only tied participants can vote", true
	case errors.Is(err, domainerrors.ErrInvalidTarget):
		return "Vote target must be a tied participant", true
	case errors.Is(err, domainerrors.ErrSelfVote):
		return "You cannot vote against yourself", true
	case errors.Is(err, domainerrors.ErrInvalidInput):
		return "Invalid vote submission", true
	default:
		return "", false
	}
}
