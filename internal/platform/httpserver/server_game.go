package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	gameerrors "tiebreak/contexts/game-core/game-engine/domain/errors"
	gamehttp "tiebreak/contexts/game-core/game-engine/transport/http"
)

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req gamehttp.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Game.Handler.SubmitAnswerHandler(r.Context(), req)
	if err != nil {
		writeGameDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleParticipantAnswers(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Game.Handler.ParticipantAnswersHandler(r.Context(), r.PathValue("participant_id"))
	if err != nil {
		writeGameDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeGameDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gameerrors.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, gameerrors.ErrParticipantNotFound):
		writeError(w, http.StatusNotFound, "participant_not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
