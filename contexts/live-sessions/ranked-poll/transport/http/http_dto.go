package httptransport

import "time"

type CreatePollRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	TimeLimit   int    `json:"time_limit"`
}

type RankingEntryRequest struct {
	RankedParticipantID string `json:"ranked_participant_id"`
	Rank                int    `json:"rank"`
}

type SubmitRankingsRequest struct {
	PollID   string                `json:"poll_id"`
	RankerID string                `json:"ranker_id"`
	Password string                `json:"password"`
	Rankings []RankingEntryRequest `json:"rankings"`
}

type SubmitRankingsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type PollResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	IsActive    bool       `json:"is_active"`
	TimeLimit   int        `json:"time_limit"`
	PollEndsAt  *time.Time `json:"poll_ends_at,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

type ActivePollResponse struct {
	Active bool          `json:"active"`
	Poll   *PollResponse `json:"poll,omitempty"`
}

type PollListResponse struct {
	Polls []PollResponse `json:"polls"`
}

type PollResultResponse struct {
	ParticipantID   string  `json:"participant_id"`
	ParticipantName string  `json:"participant_name"`
	AverageRank     float64 `json:"average_rank"`
	TotalPoints     int     `json:"total_points"`
}

type PollEliminationResponse struct {
	ParticipantID   string `json:"participant_id"`
	ParticipantName string `json:"participant_name"`
}

type PollResultsResponse struct {
	Poll                   PollResponse              `json:"poll"`
	Results                []PollResultResponse      `json:"results"`
	EliminatedParticipants []PollEliminationResponse `json:"eliminated_participants"`
}

type DeletePollResponse struct {
	Message string `json:"message"`
}
