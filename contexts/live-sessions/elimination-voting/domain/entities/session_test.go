package entities

import "testing"

func TestDetectTie(t *testing.T) {
	tied, score, ok := DetectTie([]Standing{
		{ParticipantID: "p1", Score: 50},
		{ParticipantID: "p2", Score: 50},
		{ParticipantID: "p3", Score: 50},
		{ParticipantID: "p4", Score: 10},
	})
	if !ok || score != 50 {
		t.Fatalf("expected tie at 50, got ok=%v score=%d", ok, score)
	}
	if len(tied) != 3 {
		t.Fatalf("expected 3 tied participants, got %d", len(tied))
	}

	if _, _, ok := DetectTie([]Standing{
		{ParticipantID: "p1", Score: 50},
		{ParticipantID: "p2", Score: 40},
	}); ok {
		t.Fatalf("single leader is not a tie")
	}

	if _, _, ok := DetectTie([]Standing{
		{ParticipantID: "p1", Score: 0},
		{ParticipantID: "p2", Score: 0},
	}); ok {
		t.Fatalf("a shared zero score is not a tie")
	}

	if _, _, ok := DetectTie(nil); ok {
		t.Fatalf("empty standings cannot tie")
	}
}

func TestTallyVotesSeedsWholeSet(t *testing.T) {
	session := VotingSession{TiedParticipants: []string{"p1", "p2", "p3"}}
	counts, total := TallyVotes(session, []Vote{
		{VoterParticipantID: "p1", TargetParticipantID: "p2"},
		{VoterParticipantID: "p3", TargetParticipantID: "p2"},
		{VoterParticipantID: "p2", TargetParticipantID: "outsider"},
	})
	if total != 2 {
		t.Fatalf("votes for outsiders must not count, got total %d", total)
	}
	if counts["p2"] != 2 {
		t.Fatalf("expected 2 votes against p2, got %d", counts["p2"])
	}
	if count, ok := counts["p3"]; !ok || count != 0 {
		t.Fatalf("unvoted tied participants must appear with zero, got %v/%v", count, ok)
	}
}

func TestVoteLeaders(t *testing.T) {
	order := []string{"p1", "p2", "p3"}

	leaders, maxVotes := VoteLeaders(map[string]int{"p1": 1, "p2": 2, "p3": 0}, order)
	if maxVotes != 2 || len(leaders) != 1 || leaders[0] != "p2" {
		t.Fatalf("expected sole leader p2, got %v at %d", leaders, maxVotes)
	}

	leaders, maxVotes = VoteLeaders(map[string]int{"p1": 1, "p2": 1, "p3": 0}, order)
	if maxVotes != 1 || len(leaders) != 2 {
		t.Fatalf("expected two leaders, got %v at %d", leaders, maxVotes)
	}
	if leaders[0] != "p1" || leaders[1] != "p2" {
		t.Fatalf("leaders must follow the given order, got %v", leaders)
	}

	if leaders, maxVotes = VoteLeaders(map[string]int{"p1": 0, "p2": 0}, order[:2]); leaders != nil || maxVotes != 0 {
		t.Fatalf("no votes means no leaders, got %v at %d", leaders, maxVotes)
	}
}

func TestSessionContains(t *testing.T) {
	session := VotingSession{TiedParticipants: []string{"p1", "p2"}}
	if !session.Contains("p1") {
		t.Fatalf("expected p1 in the tied set")
	}
	if session.Contains("p9") {
		t.Fatalf("did not expect p9 in the tied set")
	}
}
