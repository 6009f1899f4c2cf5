package unit

import (
	"context"
	"testing"
	"time"

	rankedpoll "tiebreak/contexts/live-sessions/ranked-poll"
	"tiebreak/contexts/live-sessions/ranked-poll/ports"
	httptransport "tiebreak/contexts/live-sessions/ranked-poll/transport/http"
)

func seedPollRoster(module rankedpoll.Module) {
	module.Store.SetParticipant(ports.ParticipantRecord{ID: "p1", Name: "alice"}, "secret")
	module.Store.SetParticipant(ports.ParticipantRecord{ID: "p2", Name: "bob"}, "secret")
	module.Store.SetParticipant(ports.ParticipantRecord{ID: "p3", Name: "carol"}, "secret")
	module.Store.SetParticipant(ports.ParticipantRecord{ID: "p4", Name: "dave"}, "secret")
}

func TestPollCreateDefaultsAndValidation(t *testing.T) {
	module := rankedpoll.NewInMemoryModule(nil, nil)

	if _, err := module.Handler.CreatePollHandler(context.Background(), httptransport.CreatePollRequest{
		Title: "   ",
	}); err == nil {
		t.Fatalf("expected empty title rejection")
	}

	defaulted, err := module.Handler.CreatePollHandler(context.Background(), httptransport.CreatePollRequest{
		Title: "Final ranking",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if defaulted.TimeLimit != 300 {
		t.Fatalf("expected default 300 second limit, got %d", defaulted.TimeLimit)
	}
	if defaulted.Status != "pending" || defaulted.IsActive {
		t.Fatalf("new polls start pending and inactive, got %+v", defaulted)
	}

	clamped, err := module.Handler.CreatePollHandler(context.Background(), httptransport.CreatePollRequest{
		Title:     "Short window",
		TimeLimit: 30,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if clamped.TimeLimit != 60 {
		t.Fatalf("expected 60 second floor, got %d", clamped.TimeLimit)
	}
}

func TestPollActivateDisplacesOtherActive(t *testing.T) {
	module := rankedpoll.NewInMemoryModule(nil, nil)

	first, err := module.Handler.CreatePollHandler(context.Background(), httptransport.CreatePollRequest{Title: "first"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second, err := module.Handler.CreatePollHandler(context.Background(), httptransport.CreatePollRequest{Title: "second"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	activated, err := module.Handler.ActivatePollHandler(context.Background(), first.ID)
	if err != nil {
		t.Fatalf("activate failed: %v", err)
	}
	if !activated.IsActive || activated.Status != "active" || activated.PollEndsAt == nil {
		t.Fatalf("expected active poll with deadline, got %+v", activated)
	}
	if !module.Store.TimerArmed(first.ID) {
		t.Fatalf("expected end timer armed")
	}

	if _, err := module.Handler.ActivatePollHandler(context.Background(), second.ID); err != nil {
		t.Fatalf("activate second failed: %v", err)
	}

	displaced, err := module.Handler.GetPollHandler(context.Background(), first.ID)
	if err != nil {
		t.Fatalf("get displaced failed: %v", err)
	}
	if displaced.IsActive || displaced.Status != "completed" {
		t.Fatalf("expected first poll force-completed, got %+v", displaced)
	}

	active, err := module.Handler.ActivePollHandler(context.Background())
	if err != nil {
		t.Fatalf("active poll failed: %v", err)
	}
	if !active.Active || active.Poll == nil || active.Poll.ID != second.ID {
		t.Fatalf("expected second poll active")
	}

	if len(module.Store.Activated()) != 2 {
		t.Fatalf("expected two activation broadcasts")
	}
}

func TestPollSubmitRankingsChecks(t *testing.T) {
	module := rankedpoll.NewInMemoryModule(nil, nil)
	seedPollRoster(module)

	created, err := module.Handler.CreatePollHandler(context.Background(), httptransport.CreatePollRequest{Title: "ranking"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	pending, err := module.Handler.SubmitRankingsHandler(context.Background(), httptransport.SubmitRankingsRequest{
		PollID:   created.ID,
		RankerID: "p1",
		Password: "secret",
		Rankings: []httptransport.RankingEntryRequest{{RankedParticipantID: "p2", Rank: 1}},
	})
	if err != nil || pending.Success {
		t.Fatalf("expected rejection while poll is pending")
	}

	if _, err := module.Handler.ActivatePollHandler(context.Background(), created.ID); err != nil {
		t.Fatalf("activate failed: %v", err)
	}

	cases := []struct {
		name string
		req  httptransport.SubmitRankingsRequest
	}{
		{"bad password", httptransport.SubmitRankingsRequest{
			PollID: created.ID, RankerID: "p1", Password: "nope",
			Rankings: []httptransport.RankingEntryRequest{{RankedParticipantID: "p2", Rank: 1}},
		}},
		{"self rank", httptransport.SubmitRankingsRequest{
			PollID: created.ID, RankerID: "p1", Password: "secret",
			Rankings: []httptransport.RankingEntryRequest{{RankedParticipantID: "p1", Rank: 1}},
		}},
		{"unknown target", httptransport.SubmitRankingsRequest{
			PollID: created.ID, RankerID: "p1", Password: "secret",
			Rankings: []httptransport.RankingEntryRequest{{RankedParticipantID: "ghost", Rank: 1}},
		}},
		{"zero rank", httptransport.SubmitRankingsRequest{
			PollID: created.ID, RankerID: "p1", Password: "secret",
			Rankings: []httptransport.RankingEntryRequest{{RankedParticipantID: "p2", Rank: 0}},
		}},
		{"empty set", httptransport.SubmitRankingsRequest{
			PollID: created.ID, RankerID: "p1", Password: "secret",
		}},
	}
	for _, tc := range cases {
		resp, err := module.Handler.SubmitRankingsHandler(context.Background(), tc.req)
		if err != nil {
			t.Fatalf("%s: expected success=false mapping, got error: %v", tc.name, err)
		}
		if resp.Success {
			t.Fatalf("%s: expected rejection", tc.name)
		}
	}

	ok, err := module.Handler.SubmitRankingsHandler(context.Background(), httptransport.SubmitRankingsRequest{
		PollID:   created.ID,
		RankerID: "p1",
		Password: "secret",
		Rankings: []httptransport.RankingEntryRequest{
			{RankedParticipantID: "p2", Rank: 1},
			{RankedParticipantID: "p3", Rank: 2},
		},
	})
	if err != nil || !ok.Success {
		t.Fatalf("expected valid submission accepted: %v", err)
	}

	// Resubmitting replaces the set rather than appending.
	if _, err := module.Handler.SubmitRankingsHandler(context.Background(), httptransport.SubmitRankingsRequest{
		PollID:   created.ID,
		RankerID: "p1",
		Password: "secret",
		Rankings: []httptransport.RankingEntryRequest{
			{RankedParticipantID: "p3", Rank: 1},
		},
	}); err != nil {
		t.Fatalf("resubmission failed: %v", err)
	}

	rankings, err := module.Store.ListRankings(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("list rankings failed: %v", err)
	}
	if len(rankings) != 1 || rankings[0].RankedParticipantID != "p3" {
		t.Fatalf("expected replacement to keep only the latest set, got %d entries", len(rankings))
	}

	if len(module.Store.RankingUpdates()) != 2 {
		t.Fatalf("expected ranking-update broadcasts for both accepted submissions")
	}
}

func TestPollSubmitRankingsAfterDeadline(t *testing.T) {
	module := rankedpoll.NewInMemoryModule(nil, nil)
	seedPollRoster(module)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	module.Store.SetNow(start)

	created, err := module.Handler.CreatePollHandler(context.Background(), httptransport.CreatePollRequest{Title: "late"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := module.Handler.ActivatePollHandler(context.Background(), created.ID); err != nil {
		t.Fatalf("activate failed: %v", err)
	}

	module.Store.SetNow(start.Add(301 * time.Second))
	resp, err := module.Handler.SubmitRankingsHandler(context.Background(), httptransport.SubmitRankingsRequest{
		PollID:   created.ID,
		RankerID: "p1",
		Password: "secret",
		Rankings: []httptransport.RankingEntryRequest{{RankedParticipantID: "p2", Rank: 1}},
	})
	if err != nil {
		t.Fatalf("late submission should map to success=false, got error: %v", err)
	}
	if resp.Success {
		t.Fatalf("expected rejection after the stored deadline")
	}
}

func TestPollEndComputesResultsAndAwards(t *testing.T) {
	module := rankedpoll.NewInMemoryModule(nil, nil)
	seedPollRoster(module)

	created, err := module.Handler.CreatePollHandler(context.Background(), httptransport.CreatePollRequest{Title: "finale"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := module.Handler.ActivatePollHandler(context.Background(), created.ID); err != nil {
		t.Fatalf("activate failed: %v", err)
	}

	if _, err := module.Handler.SubmitRankingsHandler(context.Background(), httptransport.SubmitRankingsRequest{
		PollID:   created.ID,
		RankerID: "p1",
		Password: "secret",
		Rankings: []httptransport.RankingEntryRequest{
			{RankedParticipantID: "p2", Rank: 1},
			{RankedParticipantID: "p3", Rank: 2},
			{RankedParticipantID: "p4", Rank: 3},
		},
	}); err != nil {
		t.Fatalf("rankings failed: %v", err)
	}

	ended, err := module.Handler.EndPollHandler(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("end failed: %v", err)
	}
	if ended.IsActive || ended.Status != "completed" {
		t.Fatalf("expected completed poll, got %+v", ended)
	}

	results, err := module.Handler.ResultsHandler(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("results failed: %v", err)
	}
	if len(results.Results) != 4 {
		t.Fatalf("expected all candidates in results, got %d", len(results.Results))
	}
	if results.Results[0].ParticipantID != "p2" || results.Results[0].TotalPoints != 90 {
		t.Fatalf("expected p2 first with 90 points, got %+v", results.Results[0])
	}
	if results.Results[1].ParticipantID != "p3" || results.Results[1].TotalPoints != 80 {
		t.Fatalf("expected p3 second with 80 points, got %+v", results.Results[1])
	}
	if results.Results[3].ParticipantID != "p1" || results.Results[3].AverageRank != 0 {
		t.Fatalf("expected unranked p1 last, got %+v", results.Results[3])
	}
	if len(results.EliminatedParticipants) != 3 {
		t.Fatalf("expected bottom 3 eliminated, got %d", len(results.EliminatedParticipants))
	}
	if results.EliminatedParticipants[2].ParticipantID != "p1" {
		t.Fatalf("expected p1 in the eliminated group, got %+v", results.EliminatedParticipants)
	}

	awarded, err := module.Store.Get(context.Background(), "p2")
	if err != nil {
		t.Fatalf("get p2 failed: %v", err)
	}
	if awarded.Score != 90 {
		t.Fatalf("expected 90 points credited to p2, got %d", awarded.Score)
	}
	unranked, err := module.Store.Get(context.Background(), "p1")
	if err != nil {
		t.Fatalf("get p1 failed: %v", err)
	}
	if unranked.Score != 0 {
		t.Fatalf("unranked participants get no points, got %d", unranked.Score)
	}

	if len(module.Store.Ended()) != 1 {
		t.Fatalf("expected poll-ended broadcast")
	}
	if module.Store.TimerArmed(created.ID) {
		t.Fatalf("expected end to cancel the armed timer")
	}

	// Ending again is a no-op and must not re-award points.
	if _, err := module.Handler.EndPollHandler(context.Background(), created.ID); err != nil {
		t.Fatalf("idempotent end failed: %v", err)
	}
	afterRepeat, _ := module.Store.Get(context.Background(), "p2")
	if afterRepeat.Score != 90 {
		t.Fatalf("repeat end must not re-award, got %d", afterRepeat.Score)
	}
	if len(module.Store.Ended()) != 1 {
		t.Fatalf("repeat end must not rebroadcast results")
	}
}

func TestPollTimerEndsPoll(t *testing.T) {
	module := rankedpoll.NewInMemoryModule(nil, nil)
	seedPollRoster(module)

	created, err := module.Handler.CreatePollHandler(context.Background(), httptransport.CreatePollRequest{Title: "timed"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := module.Handler.ActivatePollHandler(context.Background(), created.ID); err != nil {
		t.Fatalf("activate failed: %v", err)
	}

	if !module.Store.FireTimer(created.ID) {
		t.Fatalf("expected armed timer to fire")
	}

	ended, err := module.Handler.GetPollHandler(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get poll failed: %v", err)
	}
	if ended.Status != "completed" {
		t.Fatalf("expected timer to complete the poll, got %s", ended.Status)
	}
}

func TestPollDeleteRemovesRankings(t *testing.T) {
	module := rankedpoll.NewInMemoryModule(nil, nil)
	seedPollRoster(module)

	created, err := module.Handler.CreatePollHandler(context.Background(), httptransport.CreatePollRequest{Title: "doomed"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := module.Handler.ActivatePollHandler(context.Background(), created.ID); err != nil {
		t.Fatalf("activate failed: %v", err)
	}
	if _, err := module.Handler.SubmitRankingsHandler(context.Background(), httptransport.SubmitRankingsRequest{
		PollID:   created.ID,
		RankerID: "p1",
		Password: "secret",
		Rankings: []httptransport.RankingEntryRequest{{RankedParticipantID: "p2", Rank: 1}},
	}); err != nil {
		t.Fatalf("rankings failed: %v", err)
	}

	if _, err := module.Handler.DeletePollHandler(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := module.Handler.GetPollHandler(context.Background(), created.ID); err == nil {
		t.Fatalf("expected deleted poll to be gone")
	}
	rankings, err := module.Store.ListRankings(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("list rankings failed: %v", err)
	}
	if len(rankings) != 0 {
		t.Fatalf("expected rankings removed with the poll, got %d", len(rankings))
	}
}
