package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	questionerrors "tiebreak/contexts/game-core/question-service/domain/errors"
	questionhttp "tiebreak/contexts/game-core/question-service/transport/http"
)

func (s *Server) handleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionhttp.CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Questions.Handler.CreateQuestionHandler(r.Context(), req)
	if err != nil {
		writeQuestionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListActiveQuestions(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Questions.Handler.ListActiveHandler(r.Context())
	if err != nil {
		writeQuestionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAllQuestions(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Questions.Handler.ListAllHandler(r.Context())
	if err != nil {
		writeQuestionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetQuestion(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Questions.Handler.GetQuestionHandler(r.Context(), r.PathValue("question_id"))
	if err != nil {
		writeQuestionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReleaseNextQuestion(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Questions.Handler.ReleaseNextHandler(r.Context())
	if err != nil {
		writeQuestionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResetQuestions(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Questions.Handler.ResetAllHandler(r.Context())
	if err != nil {
		writeQuestionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeQuestionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, questionerrors.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, questionerrors.ErrQuestionNotFound):
		writeError(w, http.StatusNotFound, "question_not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
