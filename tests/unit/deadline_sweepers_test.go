package unit

import (
	"context"
	"testing"
	"time"

	eliminationvoting "tiebreak/contexts/live-sessions/elimination-voting"
	votinghttp "tiebreak/contexts/live-sessions/elimination-voting/transport/http"
	rankedpoll "tiebreak/contexts/live-sessions/ranked-poll"
	pollports "tiebreak/contexts/live-sessions/ranked-poll/ports"
	pollhttp "tiebreak/contexts/live-sessions/ranked-poll/transport/http"
)

func TestVotingSweeperClosesOverdueSessions(t *testing.T) {
	module := eliminationvoting.NewInMemoryModule(nil, nil)
	seedTiedRoster(module)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	module.Store.SetNow(start)

	opened, err := module.Handler.OpenSessionHandler(context.Background())
	if err != nil || !opened.Opened {
		t.Fatalf("expected tie-break session to open: %v", err)
	}
	sessionID := opened.Session.ID

	if _, err := module.Handler.SubmitVoteHandler(context.Background(), votinghttp.SubmitVoteRequest{
		SessionID: sessionID,
		VoterID:   "p1",
		TargetID:  "p2",
		Password:  "secret",
	}); err != nil {
		t.Fatalf("vote failed: %v", err)
	}

	// Still inside the window, the sweep leaves the session alone.
	module.Sweeper.RunOnce(context.Background())
	active, err := module.Handler.GetSessionHandler(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("get session failed: %v", err)
	}
	if active.Status != "active" {
		t.Fatalf("sweep must not touch sessions before their deadline, got %s", active.Status)
	}

	module.Store.SetNow(start.Add(61 * time.Second))
	module.Sweeper.RunOnce(context.Background())

	closed, err := module.Handler.GetSessionHandler(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("get session failed: %v", err)
	}
	if closed.Status != "completed" {
		t.Fatalf("expected sweep to close the overdue session, got %s", closed.Status)
	}
	if closed.EliminatedParticipantID != "p2" {
		t.Fatalf("expected vote tally applied on sweep close, got %q", closed.EliminatedParticipantID)
	}

	// A second sweep finds nothing active and changes nothing.
	module.Sweeper.RunOnce(context.Background())
	if len(module.Store.Ended()) != 1 {
		t.Fatalf("expected a single session-ended broadcast")
	}
}

func TestPollSweeperEndsOverduePolls(t *testing.T) {
	module := rankedpoll.NewInMemoryModule(nil, nil)
	module.Store.SetParticipant(pollports.ParticipantRecord{ID: "p1", Name: "alice"}, "secret")
	module.Store.SetParticipant(pollports.ParticipantRecord{ID: "p2", Name: "bob"}, "secret")
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	module.Store.SetNow(start)

	created, err := module.Handler.CreatePollHandler(context.Background(), pollhttp.CreatePollRequest{Title: "overdue"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := module.Handler.ActivatePollHandler(context.Background(), created.ID); err != nil {
		t.Fatalf("activate failed: %v", err)
	}

	module.Sweeper.RunOnce(context.Background())
	stillActive, err := module.Handler.GetPollHandler(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get poll failed: %v", err)
	}
	if stillActive.Status != "active" {
		t.Fatalf("sweep must not end polls before their deadline, got %s", stillActive.Status)
	}

	module.Store.SetNow(start.Add(301 * time.Second))
	module.Sweeper.RunOnce(context.Background())

	ended, err := module.Handler.GetPollHandler(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get poll failed: %v", err)
	}
	if ended.Status != "completed" {
		t.Fatalf("expected sweep to end the overdue poll, got %s", ended.Status)
	}

	module.Sweeper.RunOnce(context.Background())
	if len(module.Store.Ended()) != 1 {
		t.Fatalf("expected a single poll-ended broadcast")
	}
}
