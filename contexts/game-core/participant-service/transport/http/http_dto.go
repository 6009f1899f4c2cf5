package httptransport

import "time"

type RegisterParticipantRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type ParticipantLoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type ParticipantResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Score             int       `json:"score"`
	QuestionsAnswered int       `json:"questions_answered"`
	CreatedAt         time.Time `json:"created_at"`
}

type ParticipantLoginResponse struct {
	Success     bool                 `json:"success"`
	Message     string               `json:"message,omitempty"`
	Participant *ParticipantResponse `json:"participant,omitempty"`
}

type LeaderboardResponse struct {
	Leaderboard []ParticipantResponse `json:"leaderboard"`
}

type ParticipantListResponse struct {
	Participants []ParticipantResponse `json:"participants"`
}

type AdjustScoreRequest struct {
	Delta int `json:"delta"`
}

type WipeParticipantsResponse struct {
	Success bool `json:"success"`
	Removed int  `json:"removed"`
}
