package events

import "time"

// Audience selects which connected clients receive a broadcast.
type Audience string

const (
	AudienceAll         Audience = "all"
	AudienceAdmin       Audience = "admin"
	AudienceParticipant Audience = "participant"
)

// Event names pushed over the websocket hub. Payload shapes are the typed
// records below; the hub forwards them verbatim as JSON.
const (
	EventLeaderboardUpdate      = "leaderboardUpdate"
	EventAnswerResult           = "answerResult"
	EventQuestionReleased       = "questionReleased"
	EventQuestionsReset         = "questionsReset"
	EventVotingSessionStarted   = "votingSessionStarted"
	EventVoteUpdate             = "voteUpdate"
	EventVotingSessionEnded     = "votingSessionEnded"
	EventVotingSessionCancelled = "votingSessionCancelled"
	EventPollActivated          = "pollActivated"
	EventPollRankingUpdate      = "pollRankingUpdate"
	EventPollEnded              = "pollEnded"
)

// Envelope is the shared broadcast shape carried on the in-process bus and
// written to websocket clients.
type Envelope struct {
	Event         string    `json:"event"`
	Audience      Audience  `json:"-"`
	ParticipantID string    `json:"-"`
	OccurredAtUTC time.Time `json:"occurred_at_utc"`
	Payload       any       `json:"payload"`
}

// ParticipantRecord is the participant projection shared by leaderboard and
// session payloads.
type ParticipantRecord struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Score             int    `json:"score"`
	QuestionsAnswered int    `json:"questions_answered"`
}

type AnswerResultPayload struct {
	ParticipantID string `json:"participant_id"`
	QuestionID    string `json:"question_id"`
	IsCorrect     bool   `json:"is_correct"`
	Points        int    `json:"points"`
	Message       string `json:"message"`
}

type QuestionPayload struct {
	ID           string            `json:"id"`
	QuestionText string            `json:"question_text"`
	Options      map[string]string `json:"options"`
	Points       int               `json:"points"`
}

type QuestionsResetPayload struct {
	Message        string `json:"message"`
	QuestionsReset int    `json:"questions_reset"`
}

type VotingSessionPayload struct {
	ID                      string    `json:"id"`
	TiedParticipants        []string  `json:"tied_participants"`
	TiedScore               int       `json:"tied_score"`
	Status                  string    `json:"status"`
	VotingTimeInSeconds     int       `json:"voting_time_in_seconds"`
	VotingEndsAt            time.Time `json:"voting_ends_at"`
	EliminatedParticipantID string    `json:"eliminated_participant_id,omitempty"`
}

type VotingSessionStartedPayload struct {
	VotingSession    VotingSessionPayload `json:"voting_session"`
	TiedParticipants []ParticipantRecord  `json:"tied_participants"`
}

type VoteUpdatePayload struct {
	VotingSessionID string `json:"voting_session_id"`
}

type VotingResultsPayload struct {
	VotingSession         VotingSessionPayload `json:"voting_session"`
	VoteCount             map[string]int       `json:"vote_count"`
	TotalVotes            int                  `json:"total_votes"`
	EliminatedParticipant *ParticipantRecord   `json:"eliminated_participant"`
}

type VotingSessionEndedPayload struct {
	SessionID string               `json:"session_id"`
	Results   VotingResultsPayload `json:"results"`
}

type VotingSessionCancelledPayload struct {
	SessionID string `json:"session_id"`
}

type PollPayload struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	IsActive    bool       `json:"is_active"`
	TimeLimit   int        `json:"time_limit"`
	PollEndsAt  *time.Time `json:"poll_ends_at,omitempty"`
	Status      string     `json:"status"`
}

type PollRankingUpdatePayload struct {
	PollID string `json:"poll_id"`
}

type PollResultEntry struct {
	ParticipantID   string  `json:"participant_id"`
	ParticipantName string  `json:"participant_name"`
	AverageRank     float64 `json:"average_rank"`
	TotalPoints     int     `json:"total_points"`
}

type PollEliminationEntry struct {
	ParticipantID   string `json:"participant_id"`
	ParticipantName string `json:"participant_name"`
}

type PollResultsPayload struct {
	Poll                   PollPayload            `json:"poll"`
	Results                []PollResultEntry      `json:"results"`
	EliminatedParticipants []PollEliminationEntry `json:"eliminated_participants"`
}

type PollEndedPayload struct {
	PollID  string             `json:"poll_id"`
	Results PollResultsPayload `json:"results"`
}
