package unit

import (
	"context"
	"testing"
	"time"

	eliminationvoting "tiebreak/contexts/live-sessions/elimination-voting"
	"tiebreak/contexts/live-sessions/elimination-voting/ports"
	httptransport "tiebreak/contexts/live-sessions/elimination-voting/transport/http"
)

func seedTiedRoster(module eliminationvoting.Module) {
	module.Store.SetParticipant(ports.ParticipantRecord{ID: "p1", Name: "alice", Score: 50}, "secret")
	module.Store.SetParticipant(ports.ParticipantRecord{ID: "p2", Name: "bob", Score: 50}, "secret")
	module.Store.SetParticipant(ports.ParticipantRecord{ID: "p3", Name: "carol", Score: 50}, "secret")
	module.Store.SetParticipant(ports.ParticipantRecord{ID: "p4", Name: "dave", Score: 10}, "secret")
}

func TestOpenSessionDetectsTieAndIsIdempotent(t *testing.T) {
	module := eliminationvoting.NewInMemoryModule(nil, nil)
	seedTiedRoster(module)

	opened, err := module.Handler.OpenSessionHandler(context.Background())
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if !opened.Opened || opened.Session == nil {
		t.Fatalf("expected a session for the three-way tie")
	}
	if len(opened.Session.TiedParticipants) != 3 || opened.Session.TiedScore != 50 {
		t.Fatalf("expected 3 tied at 50, got %+v", opened.Session)
	}
	if opened.Session.VotingTimeInSeconds != 60 {
		t.Fatalf("expected default 60 second window, got %d", opened.Session.VotingTimeInSeconds)
	}
	if !module.Store.TimerArmed(opened.Session.ID) {
		t.Fatalf("expected close timer armed")
	}

	again, err := module.Handler.OpenSessionHandler(context.Background())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if again.Opened {
		t.Fatalf("reopening the same tie must not create a new session")
	}
	if again.Session == nil || again.Session.ID != opened.Session.ID {
		t.Fatalf("expected the existing session back")
	}

	if len(module.Store.Started()) != 1 {
		t.Fatalf("expected exactly one session-started broadcast")
	}
}

func TestOpenSessionNoTieAndSupersede(t *testing.T) {
	module := eliminationvoting.NewInMemoryModule(nil, nil)
	module.Store.SetParticipant(ports.ParticipantRecord{ID: "p1", Name: "alice", Score: 50}, "secret")
	module.Store.SetParticipant(ports.ParticipantRecord{ID: "p2", Name: "bob", Score: 40}, "secret")

	noTie, err := module.Handler.OpenSessionHandler(context.Background())
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if noTie.Opened || noTie.Session != nil {
		t.Fatalf("expected no session without a tie")
	}

	// Create a tie at 50 and open.
	module.Store.SetParticipant(ports.ParticipantRecord{ID: "p2", Name: "bob", Score: 50}, "secret")
	first, err := module.Handler.OpenSessionHandler(context.Background())
	if err != nil || !first.Opened {
		t.Fatalf("expected session for new tie: %v", err)
	}

	// The standings move to a different tied score; reopening supersedes.
	module.Store.SetParticipant(ports.ParticipantRecord{ID: "p1", Name: "alice", Score: 70}, "secret")
	module.Store.SetParticipant(ports.ParticipantRecord{ID: "p2", Name: "bob", Score: 70}, "secret")

	second, err := module.Handler.OpenSessionHandler(context.Background())
	if err != nil || !second.Opened {
		t.Fatalf("expected superseding session: %v", err)
	}
	if second.Session.ID == first.Session.ID {
		t.Fatalf("superseding open must create a new session")
	}

	old, err := module.Handler.GetSessionHandler(context.Background(), first.Session.ID)
	if err != nil {
		t.Fatalf("get superseded session failed: %v", err)
	}
	if old.Status != "cancelled" {
		t.Fatalf("expected superseded session cancelled, got %s", old.Status)
	}
	if len(module.Store.CancelledNotes()) != 1 {
		t.Fatalf("expected cancellation broadcast for superseded session")
	}
}

func TestSubmitVoteEligibilityChain(t *testing.T) {
	module := eliminationvoting.NewInMemoryModule(nil, nil)
	seedTiedRoster(module)

	opened, err := module.Handler.OpenSessionHandler(context.Background())
	if err != nil || !opened.Opened {
		t.Fatalf("open failed: %v", err)
	}
	sessionID := opened.Session.ID

	cases := []struct {
		name string
		req  httptransport.SubmitVoteRequest
	}{
		{"bad password", httptransport.SubmitVoteRequest{SessionID: sessionID, VoterID: "p1", TargetID: "p2", Password: "nope"}},
		{"outsider voter", httptransport.SubmitVoteRequest{SessionID: sessionID, VoterID: "p4", TargetID: "p2", Password: "secret"}},
		{"outsider target", httptransport.SubmitVoteRequest{SessionID: sessionID, VoterID: "p1", TargetID: "p4", Password: "secret"}},
		{"self vote", httptransport.SubmitVoteRequest{SessionID: sessionID, VoterID: "p1", TargetID: "p1", Password: "secret"}},
		{"missing session", httptransport.SubmitVoteRequest{SessionID: "missing", VoterID: "p1", TargetID: "p2", Password: "secret"}},
	}
	for _, tc := range cases {
		resp, err := module.Handler.SubmitVoteHandler(context.Background(), tc.req)
		if err != nil {
			t.Fatalf("%s: expected success=false mapping, got error: %v", tc.name, err)
		}
		if resp.Success {
			t.Fatalf("%s: expected rejection", tc.name)
		}
	}

	ok, err := module.Handler.SubmitVoteHandler(context.Background(), httptransport.SubmitVoteRequest{
		SessionID: sessionID, VoterID: "p1", TargetID: "p2", Password: "secret",
	})
	if err != nil || !ok.Success {
		t.Fatalf("expected valid vote accepted: %v", err)
	}

	// Re-voting replaces the previous target instead of double counting.
	if _, err := module.Handler.SubmitVoteHandler(context.Background(), httptransport.SubmitVoteRequest{
		SessionID: sessionID, VoterID: "p1", TargetID: "p3", Password: "secret",
	}); err != nil {
		t.Fatalf("revote failed: %v", err)
	}

	results, err := module.Handler.ResultsHandler(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("results failed: %v", err)
	}
	if results.TotalVotes != 1 {
		t.Fatalf("expected one counted vote after revote, got %d", results.TotalVotes)
	}
	if results.VoteCount["p3"] != 1 || results.VoteCount["p2"] != 0 {
		t.Fatalf("expected the revote to move the vote, got %+v", results.VoteCount)
	}
	if results.VoteCount["p1"] != 0 {
		t.Fatalf("tally must include zero-count tied participants")
	}
}

func TestCloseSessionEliminatesAndPenalizes(t *testing.T) {
	module := eliminationvoting.NewInMemoryModule(nil, nil)
	seedTiedRoster(module)

	opened, err := module.Handler.OpenSessionHandler(context.Background())
	if err != nil || !opened.Opened {
		t.Fatalf("open failed: %v", err)
	}
	sessionID := opened.Session.ID

	for _, vote := range []struct{ voter, target string }{
		{"p1", "p2"},
		{"p3", "p2"},
		{"p2", "p1"},
	} {
		if _, err := module.Handler.SubmitVoteHandler(context.Background(), httptransport.SubmitVoteRequest{
			SessionID: sessionID, VoterID: vote.voter, TargetID: vote.target, Password: "secret",
		}); err != nil {
			t.Fatalf("vote failed: %v", err)
		}
	}

	closed, err := module.Handler.CloseSessionHandler(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if closed.Status != "completed" {
		t.Fatalf("expected completed, got %s", closed.Status)
	}
	if closed.EliminatedParticipantID != "p2" {
		t.Fatalf("expected p2 eliminated with most votes, got %q", closed.EliminatedParticipantID)
	}

	penalized, err := module.Store.Get(context.Background(), "p2")
	if err != nil {
		t.Fatalf("get p2 failed: %v", err)
	}
	if penalized.Score != 49 {
		t.Fatalf("expected one point penalty, got score %d", penalized.Score)
	}

	if module.Store.TimerArmed(sessionID) {
		t.Fatalf("expected close to cancel the armed timer")
	}
	if len(module.Store.Ended()) != 1 {
		t.Fatalf("expected session-ended broadcast")
	}

	// Closing again is a no-op on an already-completed session.
	again, err := module.Handler.CloseSessionHandler(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("idempotent close failed: %v", err)
	}
	if again.Status != "completed" {
		t.Fatalf("expected completed on repeat close, got %s", again.Status)
	}
	if len(module.Store.Ended()) != 1 {
		t.Fatalf("repeat close must not rebroadcast results")
	}

	// Voting after completion is rejected.
	late, err := module.Handler.SubmitVoteHandler(context.Background(), httptransport.SubmitVoteRequest{
		SessionID: sessionID, VoterID: "p1", TargetID: "p2", Password: "secret",
	})
	if err != nil || late.Success {
		t.Fatalf("expected vote rejection after close")
	}
}

func TestCloseVoteTieUsesRandomPick(t *testing.T) {
	module := eliminationvoting.NewInMemoryModule(nil, nil)
	seedTiedRoster(module)
	module.Store.SetRandPick(1)

	opened, err := module.Handler.OpenSessionHandler(context.Background())
	if err != nil || !opened.Opened {
		t.Fatalf("open failed: %v", err)
	}
	sessionID := opened.Session.ID

	// p1 and p2 split the votes one apiece.
	for _, vote := range []struct{ voter, target string }{
		{"p2", "p1"},
		{"p1", "p2"},
	} {
		if _, err := module.Handler.SubmitVoteHandler(context.Background(), httptransport.SubmitVoteRequest{
			SessionID: sessionID, VoterID: vote.voter, TargetID: vote.target, Password: "secret",
		}); err != nil {
			t.Fatalf("vote failed: %v", err)
		}
	}

	closed, err := module.Handler.CloseSessionHandler(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if closed.EliminatedParticipantID != "p2" {
		t.Fatalf("expected deterministic pick of the second leader, got %q", closed.EliminatedParticipantID)
	}
}

func TestCloseWithNoVotesEliminatesNobody(t *testing.T) {
	module := eliminationvoting.NewInMemoryModule(nil, nil)
	seedTiedRoster(module)

	opened, err := module.Handler.OpenSessionHandler(context.Background())
	if err != nil || !opened.Opened {
		t.Fatalf("open failed: %v", err)
	}

	closed, err := module.Handler.CloseSessionHandler(context.Background(), opened.Session.ID)
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if closed.EliminatedParticipantID != "" {
		t.Fatalf("expected no elimination without votes, got %q", closed.EliminatedParticipantID)
	}

	results, err := module.Handler.ResultsHandler(context.Background(), opened.Session.ID)
	if err != nil {
		t.Fatalf("results failed: %v", err)
	}
	if results.TotalVotes != 0 || results.EliminatedParticipant != nil {
		t.Fatalf("expected empty tally, got %+v", results)
	}
}

func TestVoteAfterStoredDeadlineExpires(t *testing.T) {
	module := eliminationvoting.NewInMemoryModule(nil, nil)
	seedTiedRoster(module)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	module.Store.SetNow(start)

	opened, err := module.Handler.OpenSessionHandler(context.Background())
	if err != nil || !opened.Opened {
		t.Fatalf("open failed: %v", err)
	}

	module.Store.SetNow(start.Add(61 * time.Second))
	resp, err := module.Handler.SubmitVoteHandler(context.Background(), httptransport.SubmitVoteRequest{
		SessionID: opened.Session.ID, VoterID: "p1", TargetID: "p2", Password: "secret",
	})
	if err != nil {
		t.Fatalf("expired vote should map to success=false, got error: %v", err)
	}
	if resp.Success {
		t.Fatalf("expected vote rejection after the stored deadline")
	}
}

func TestScheduledTimerClosesSession(t *testing.T) {
	module := eliminationvoting.NewInMemoryModule(nil, nil)
	seedTiedRoster(module)

	opened, err := module.Handler.OpenSessionHandler(context.Background())
	if err != nil || !opened.Opened {
		t.Fatalf("open failed: %v", err)
	}

	if !module.Store.FireTimer(opened.Session.ID) {
		t.Fatalf("expected armed timer to fire")
	}

	session, err := module.Handler.GetSessionHandler(context.Background(), opened.Session.ID)
	if err != nil {
		t.Fatalf("get session failed: %v", err)
	}
	if session.Status != "completed" {
		t.Fatalf("expected timer to complete the session, got %s", session.Status)
	}
}
