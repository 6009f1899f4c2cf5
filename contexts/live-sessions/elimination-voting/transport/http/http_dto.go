package httptransport

import "time"

type SubmitVoteRequest struct {
	SessionID string `json:"session_id"`
	VoterID   string `json:"voter_id"`
	TargetID  string `json:"target_id"`
	Password  string `json:"password"`
}

type SubmitVoteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type VotingSessionResponse struct {
	ID                      string    `json:"id"`
	TiedParticipants        []string  `json:"tied_participants"`
	TiedScore               int       `json:"tied_score"`
	Status                  string    `json:"status"`
	VotingTimeInSeconds     int       `json:"voting_time_in_seconds"`
	VotingEndsAt            time.Time `json:"voting_ends_at"`
	EliminatedParticipantID string    `json:"eliminated_participant_id,omitempty"`
	CreatedAt               time.Time `json:"created_at"`
}

type ActiveSessionResponse struct {
	Active  bool                   `json:"active"`
	Session *VotingSessionResponse `json:"session,omitempty"`
}

type SessionListResponse struct {
	Sessions []VotingSessionResponse `json:"sessions"`
}

type EliminatedParticipantResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type VotingResultsResponse struct {
	Session               VotingSessionResponse          `json:"session"`
	VoteCount             map[string]int                 `json:"vote_count"`
	TotalVotes            int                            `json:"total_votes"`
	EliminatedParticipant *EliminatedParticipantResponse `json:"eliminated_participant"`
}

type OpenSessionResponse struct {
	Opened  bool                   `json:"opened"`
	Session *VotingSessionResponse `json:"session,omitempty"`
	Message string                 `json:"message,omitempty"`
}
