package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	gameengine "tiebreak/contexts/game-core/game-engine"
	participantservice "tiebreak/contexts/game-core/participant-service"
	questionservice "tiebreak/contexts/game-core/question-service"
	adminauth "tiebreak/contexts/identity-access/admin-auth"
	eliminationvoting "tiebreak/contexts/live-sessions/elimination-voting"
	rankedpoll "tiebreak/contexts/live-sessions/ranked-poll"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "tiebreak/internal/platform/httpserver/docs"
)

// Modules carries every bounded-context module the server exposes.
type Modules struct {
	Admin        adminauth.Module
	Participants participantservice.Module
	Questions    questionservice.Module
	Game         gameengine.Module
	Voting       eliminationvoting.Module
	Polls        rankedpoll.Module
}

type Server struct {
	mux     *http.ServeMux
	logger  *slog.Logger
	addr    string
	modules Modules
	hub     http.Handler
}

func New(modules Modules, hub http.Handler, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger,
		addr:    addr,
		modules: modules,
		hub:     hub,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	if s.hub != nil {
		s.mux.Handle("GET /ws", s.hub)
	}

	s.mux.HandleFunc("POST /api/admin/login", s.handleAdminLogin)

	s.mux.HandleFunc("POST /api/participants/register", s.handleRegisterParticipant)
	s.mux.HandleFunc("POST /api/participants/login", s.handleParticipantLogin)
	s.mux.HandleFunc("GET /api/participants", s.handleListParticipants)
	s.mux.HandleFunc("GET /api/participants/leaderboard", s.handleLeaderboard)
	s.mux.HandleFunc("GET /api/participants/{participant_id}", s.handleGetParticipant)
	s.mux.HandleFunc("PATCH /api/participants/{participant_id}/score", s.requireAdmin(s.handleAdjustScore))
	s.mux.HandleFunc("DELETE /api/participants", s.requireAdmin(s.handleWipeParticipants))

	s.mux.HandleFunc("POST /api/questions", s.requireAdmin(s.handleCreateQuestion))
	s.mux.HandleFunc("GET /api/questions", s.handleListActiveQuestions)
	s.mux.HandleFunc("GET /api/questions/all", s.requireAdmin(s.handleListAllQuestions))
	s.mux.HandleFunc("GET /api/questions/{question_id}", s.handleGetQuestion)
	s.mux.HandleFunc("POST /api/questions/release", s.requireAdmin(s.handleReleaseNextQuestion))
	s.mux.HandleFunc("POST /api/questions/reset", s.requireAdmin(s.handleResetQuestions))

	s.mux.HandleFunc("POST /api/game/answer", s.handleSubmitAnswer)
	s.mux.HandleFunc("GET /api/game/answers/{participant_id}", s.handleParticipantAnswers)

	s.mux.HandleFunc("POST /api/voting/open", s.requireAdmin(s.handleOpenVotingSession))
	s.mux.HandleFunc("POST /api/voting/vote", s.handleSubmitVote)
	s.mux.HandleFunc("GET /api/voting/active", s.handleActiveVotingSession)
	s.mux.HandleFunc("GET /api/voting/sessions", s.handleListVotingSessions)
	s.mux.HandleFunc("GET /api/voting/{session_id}", s.handleGetVotingSession)
	s.mux.HandleFunc("GET /api/voting/{session_id}/results", s.handleVotingResults)
	s.mux.HandleFunc("POST /api/voting/{session_id}/close", s.requireAdmin(s.handleCloseVotingSession))
	s.mux.HandleFunc("POST /api/voting/{session_id}/cancel", s.requireAdmin(s.handleCancelVotingSession))

	s.mux.HandleFunc("POST /api/poll", s.requireAdmin(s.handleCreatePoll))
	s.mux.HandleFunc("GET /api/poll", s.handleListPolls)
	s.mux.HandleFunc("GET /api/poll/active", s.handleActivePoll)
	s.mux.HandleFunc("GET /api/poll/{poll_id}", s.handleGetPoll)
	s.mux.HandleFunc("GET /api/poll/{poll_id}/results", s.handlePollResults)
	s.mux.HandleFunc("POST /api/poll/{poll_id}/activate", s.requireAdmin(s.handleActivatePoll))
	s.mux.HandleFunc("POST /api/poll/{poll_id}/end", s.requireAdmin(s.handleEndPoll))
	s.mux.HandleFunc("POST /api/poll/rank", s.handleSubmitRankings)
	s.mux.HandleFunc("DELETE /api/poll/{poll_id}", s.requireAdmin(s.handleDeletePoll))
}

// requireAdmin gates a route behind a bearer token issued by the admin-auth
// module.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing_token", "Authorization bearer token is required")
			return
		}
		if err := s.modules.Admin.Auth.Validate(r.Context(), token); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token", "admin token is invalid or expired")
			return
		}
		next(w, r)
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
