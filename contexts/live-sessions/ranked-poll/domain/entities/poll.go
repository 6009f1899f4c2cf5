package entities

import (
	"math"
	"sort"
	"time"
)

type PollStatus string

const (
	PollStatusPending   PollStatus = "pending"
	PollStatusActive    PollStatus = "active"
	PollStatusCompleted PollStatus = "completed"
	PollStatusCancelled PollStatus = "cancelled"
)

const (
	DefaultTimeLimitSeconds = 300
	MinTimeLimitSeconds     = 60
)

// Poll is one ranked voting round. IsActive mirrors the status flag so the
// "at most one active" rule can be enforced with a single column update.
type Poll struct {
	ID          string
	Title       string
	Description string
	IsActive    bool
	TimeLimit   int
	PollEndsAt  *time.Time
	Status      PollStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Ranking is one ranker's position for one ranked participant. A ranker's
// whole set is replaced on resubmission.
type Ranking struct {
	ID                  string
	PollID              string
	RankerParticipantID string
	RankedParticipantID string
	Rank                int
	CreatedAt           time.Time
}

// Candidate is a participant as poll results see it.
type Candidate struct {
	ParticipantID string
	Name          string
}

// Result is one participant's aggregate outcome. AverageRank zero means
// nobody ranked them; those sort after everyone with a real average.
type Result struct {
	ParticipantID string
	Name          string
	AverageRank   float64
	TotalPoints   int
}

// ComputeResults aggregates rankings per candidate. Order: average rank
// ascending, unranked last, candidate order as the stable tiebreak. Points
// follow max(0, round(100 - avg*10)) for ranked candidates.
func ComputeResults(candidates []Candidate, rankings []Ranking) []Result {
	sums := make(map[string]int, len(candidates))
	counts := make(map[string]int, len(candidates))
	for _, ranking := range rankings {
		sums[ranking.RankedParticipantID] += ranking.Rank
		counts[ranking.RankedParticipantID]++
	}

	results := make([]Result, 0, len(candidates))
	for _, candidate := range candidates {
		result := Result{
			ParticipantID: candidate.ParticipantID,
			Name:          candidate.Name,
		}
		if counts[candidate.ParticipantID] > 0 {
			result.AverageRank = float64(sums[candidate.ParticipantID]) / float64(counts[candidate.ParticipantID])
			points := int(math.Round(100 - result.AverageRank*10))
			if points < 0 {
				points = 0
			}
			result.TotalPoints = points
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		left, right := results[i].AverageRank, results[j].AverageRank
		if left == 0 {
			return false
		}
		if right == 0 {
			return true
		}
		return left < right
	})
	return results
}

// BottomGroup returns the last n results, the group reported as eliminated.
func BottomGroup(results []Result, n int) []Result {
	if n <= 0 || len(results) == 0 {
		return nil
	}
	if n > len(results) {
		n = len(results)
	}
	return results[len(results)-n:]
}
