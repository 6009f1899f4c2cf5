package entities

import "testing"

func TestComputeResultsAveragesAndPoints(t *testing.T) {
	candidates := []Candidate{
		{ParticipantID: "p1", Name: "alice"},
		{ParticipantID: "p2", Name: "bob"},
		{ParticipantID: "p3", Name: "carol"},
	}
	rankings := []Ranking{
		{RankerParticipantID: "p3", RankedParticipantID: "p1", Rank: 1},
		{RankerParticipantID: "p3", RankedParticipantID: "p2", Rank: 2},
		{RankerParticipantID: "p1", RankedParticipantID: "p2", Rank: 1},
	}

	results := ComputeResults(candidates, rankings)
	if len(results) != 3 {
		t.Fatalf("expected a result per candidate, got %d", len(results))
	}
	if results[0].ParticipantID != "p1" || results[0].AverageRank != 1 || results[0].TotalPoints != 90 {
		t.Fatalf("expected p1 first with average 1 and 90 points, got %+v", results[0])
	}
	if results[1].ParticipantID != "p2" || results[1].AverageRank != 1.5 || results[1].TotalPoints != 85 {
		t.Fatalf("expected p2 second with average 1.5 and 85 points, got %+v", results[1])
	}
	if results[2].ParticipantID != "p3" || results[2].AverageRank != 0 || results[2].TotalPoints != 0 {
		t.Fatalf("unranked candidates sort last with zero points, got %+v", results[2])
	}
}

func TestComputeResultsClampsNegativePoints(t *testing.T) {
	results := ComputeResults(
		[]Candidate{{ParticipantID: "p1"}},
		[]Ranking{{RankedParticipantID: "p1", Rank: 15}},
	)
	if results[0].TotalPoints != 0 {
		t.Fatalf("expected points floored at zero for deep ranks, got %d", results[0].TotalPoints)
	}
}

func TestComputeResultsKeepsCandidateOrderOnTies(t *testing.T) {
	candidates := []Candidate{
		{ParticipantID: "p1"},
		{ParticipantID: "p2"},
	}
	rankings := []Ranking{
		{RankerParticipantID: "x", RankedParticipantID: "p1", Rank: 2},
		{RankerParticipantID: "x", RankedParticipantID: "p2", Rank: 2},
	}
	results := ComputeResults(candidates, rankings)
	if results[0].ParticipantID != "p1" || results[1].ParticipantID != "p2" {
		t.Fatalf("equal averages must keep candidate order, got %v then %v",
			results[0].ParticipantID, results[1].ParticipantID)
	}
}

func TestBottomGroup(t *testing.T) {
	results := []Result{
		{ParticipantID: "p1"},
		{ParticipantID: "p2"},
		{ParticipantID: "p3"},
	}

	bottom := BottomGroup(results, 2)
	if len(bottom) != 2 || bottom[0].ParticipantID != "p2" || bottom[1].ParticipantID != "p3" {
		t.Fatalf("expected the last two results, got %v", bottom)
	}

	if got := BottomGroup(results, 5); len(got) != 3 {
		t.Fatalf("oversized group clamps to everyone, got %d", len(got))
	}
	if got := BottomGroup(results, 0); got != nil {
		t.Fatalf("zero count returns nothing, got %v", got)
	}
	if got := BottomGroup(nil, 3); got != nil {
		t.Fatalf("no results returns nothing, got %v", got)
	}
}
