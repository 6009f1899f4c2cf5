package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	participanterrors "tiebreak/contexts/game-core/participant-service/domain/errors"
	participanthttp "tiebreak/contexts/game-core/participant-service/transport/http"
)

func (s *Server) handleRegisterParticipant(w http.ResponseWriter, r *http.Request) {
	var req participanthttp.RegisterParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Participants.Handler.RegisterHandler(r.Context(), req)
	if err != nil {
		writeParticipantDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleParticipantLogin(w http.ResponseWriter, r *http.Request) {
	var req participanthttp.ParticipantLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Participants.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		writeParticipantDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetParticipant(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Participants.Handler.GetParticipantHandler(r.Context(), r.PathValue("participant_id"))
	if err != nil {
		writeParticipantDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListParticipants(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Participants.Handler.ListParticipantsHandler(r.Context())
	if err != nil {
		writeParticipantDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Participants.Handler.LeaderboardHandler(r.Context())
	if err != nil {
		writeParticipantDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdjustScore(w http.ResponseWriter, r *http.Request) {
	var req participanthttp.AdjustScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Participants.Handler.AdjustScoreHandler(r.Context(), r.PathValue("participant_id"), req)
	if err != nil {
		writeParticipantDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWipeParticipants(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Participants.Handler.WipeAllHandler(r.Context())
	if err != nil {
		writeParticipantDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeParticipantDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, participanterrors.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, participanterrors.ErrNameTaken):
		writeError(w, http.StatusConflict, "name_taken", err.Error())
	case errors.Is(err, participanterrors.ErrParticipantNotFound):
		writeError(w, http.StatusNotFound, "participant_not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
