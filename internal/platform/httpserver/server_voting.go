package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	votingerrors "tiebreak/contexts/live-sessions/elimination-voting/domain/errors"
	votinghttp "tiebreak/contexts/live-sessions/elimination-voting/transport/http"
)

func (s *Server) handleOpenVotingSession(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Voting.Handler.OpenSessionHandler(r.Context())
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitVote(w http.ResponseWriter, r *http.Request) {
	var req votinghttp.SubmitVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Voting.Handler.SubmitVoteHandler(r.Context(), req)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleActiveVotingSession(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Voting.Handler.ActiveSessionHandler(r.Context())
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListVotingSessions(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Voting.Handler.ListSessionsHandler(r.Context())
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetVotingSession(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Voting.Handler.GetSessionHandler(r.Context(), r.PathValue("session_id"))
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVotingResults(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Voting.Handler.ResultsHandler(r.Context(), r.PathValue("session_id"))
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCloseVotingSession(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Voting.Handler.CloseSessionHandler(r.Context(), r.PathValue("session_id"))
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCancelVotingSession(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Voting.Handler.CancelSessionHandler(r.Context(), r.PathValue("session_id"))
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeVotingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, votingerrors.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, votingerrors.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session_not_found", err.Error())
	case errors.Is(err, votingerrors.ErrParticipantNotFound):
		writeError(w, http.StatusNotFound, "participant_not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
