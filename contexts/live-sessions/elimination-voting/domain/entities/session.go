package entities

import "time"

type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
)

// VotingSession is one elimination round among tied participants. The stored
// deadline, not the timer, is the authoritative cutoff for submissions.
type VotingSession struct {
	ID                      string
	TiedParticipants        []string
	TiedScore               int
	Status                  SessionStatus
	VotingTimeInSeconds     int
	VotingEndsAt            time.Time
	EliminatedParticipantID string
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// Vote is one tied participant's elimination choice. A voter has at most one
// vote per session; re-voting replaces the target.
type Vote struct {
	ID                  string
	VotingSessionID     string
	VoterParticipantID  string
	TargetParticipantID string
	CreatedAt           time.Time
}

// Contains reports whether participantID is in the tied set.
func (s VotingSession) Contains(participantID string) bool {
	for _, id := range s.TiedParticipants {
		if id == participantID {
			return true
		}
	}
	return false
}

// Standing is a leaderboard row as the tie detector sees it.
type Standing struct {
	ParticipantID string
	Score         int
}

// DetectTie returns the participants sharing the strictly positive maximum
// score when at least two of them do.
func DetectTie(standings []Standing) ([]string, int, bool) {
	maxScore := 0
	for _, standing := range standings {
		if standing.Score > maxScore {
			maxScore = standing.Score
		}
	}
	if maxScore <= 0 {
		return nil, 0, false
	}

	tied := make([]string, 0, 2)
	for _, standing := range standings {
		if standing.Score == maxScore {
			tied = append(tied, standing.ParticipantID)
		}
	}
	if len(tied) < 2 {
		return nil, 0, false
	}
	return tied, maxScore, true
}

// TallyVotes counts votes per tied participant. Tied participants with no
// votes appear with a zero count so results always cover the whole set.
func TallyVotes(session VotingSession, votes []Vote) (map[string]int, int) {
	voteCount := make(map[string]int, len(session.TiedParticipants))
	for _, id := range session.TiedParticipants {
		voteCount[id] = 0
	}
	total := 0
	for _, vote := range votes {
		if _, ok := voteCount[vote.TargetParticipantID]; !ok {
			continue
		}
		voteCount[vote.TargetParticipantID]++
		total++
	}
	return voteCount, total
}

// VoteLeaders returns the participants holding the maximum count, and that
// count. A zero maximum means nobody was voted against.
func VoteLeaders(voteCount map[string]int, order []string) ([]string, int) {
	maxVotes := 0
	for _, count := range voteCount {
		if count > maxVotes {
			maxVotes = count
		}
	}
	if maxVotes == 0 {
		return nil, 0
	}
	leaders := make([]string, 0, 1)
	for _, id := range order {
		if voteCount[id] == maxVotes {
			leaders = append(leaders, id)
		}
	}
	return leaders, maxVotes
}
