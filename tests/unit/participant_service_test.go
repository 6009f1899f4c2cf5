package unit

import (
	"context"
	"testing"

	participantservice "tiebreak/contexts/game-core/participant-service"
	httptransport "tiebreak/contexts/game-core/participant-service/transport/http"
)

func TestParticipantRegisterLoginFlow(t *testing.T) {
	module := participantservice.NewInMemoryModule(nil, nil)

	registered, err := module.Handler.RegisterHandler(context.Background(), httptransport.RegisterParticipantRequest{
		Name:     "alice",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if registered.ID == "" {
		t.Fatalf("expected generated participant id")
	}
	if registered.Score != 0 {
		t.Fatalf("expected zero starting score, got %d", registered.Score)
	}

	if _, err := module.Handler.RegisterHandler(context.Background(), httptransport.RegisterParticipantRequest{
		Name:     "Alice",
		Password: "secret",
	}); err == nil {
		t.Fatalf("expected duplicate name rejection")
	}

	if _, err := module.Handler.RegisterHandler(context.Background(), httptransport.RegisterParticipantRequest{
		Name:     "b",
		Password: "secret",
	}); err == nil {
		t.Fatalf("expected short name rejection")
	}
	if _, err := module.Handler.RegisterHandler(context.Background(), httptransport.RegisterParticipantRequest{
		Name:     "bob",
		Password: "abc",
	}); err == nil {
		t.Fatalf("expected short password rejection")
	}

	login, err := module.Handler.LoginHandler(context.Background(), httptransport.ParticipantLoginRequest{
		Name:     "ALICE",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !login.Success || login.Participant == nil || login.Participant.ID != registered.ID {
		t.Fatalf("expected successful login for registered participant")
	}

	badLogin, err := module.Handler.LoginHandler(context.Background(), httptransport.ParticipantLoginRequest{
		Name:     "alice",
		Password: "wrong",
	})
	if err != nil {
		t.Fatalf("bad login should map to success=false, got error: %v", err)
	}
	if badLogin.Success {
		t.Fatalf("expected success=false for wrong password")
	}
}

func TestParticipantScoreFloorAndLeaderboard(t *testing.T) {
	module := participantservice.NewInMemoryModule(nil, nil)

	ids := make([]string, 0, 12)
	for _, name := range []string{
		"p01", "p02", "p03", "p04", "p05", "p06",
		"p07", "p08", "p09", "p10", "p11", "p12",
	} {
		registered, err := module.Handler.RegisterHandler(context.Background(), httptransport.RegisterParticipantRequest{
			Name:     name,
			Password: "secret",
		})
		if err != nil {
			t.Fatalf("register %s failed: %v", name, err)
		}
		ids = append(ids, registered.ID)
	}

	for i, id := range ids {
		if _, err := module.Handler.AdjustScoreHandler(context.Background(), id, httptransport.AdjustScoreRequest{Delta: i * 5}); err != nil {
			t.Fatalf("adjust score failed: %v", err)
		}
	}

	clamped, err := module.Handler.AdjustScoreHandler(context.Background(), ids[1], httptransport.AdjustScoreRequest{Delta: -100})
	if err != nil {
		t.Fatalf("negative adjust failed: %v", err)
	}
	if clamped.Score != 0 {
		t.Fatalf("expected score clamped at zero, got %d", clamped.Score)
	}

	leaderboard, err := module.Handler.LeaderboardHandler(context.Background())
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	if len(leaderboard.Leaderboard) != 10 {
		t.Fatalf("expected top-10 leaderboard, got %d entries", len(leaderboard.Leaderboard))
	}
	if leaderboard.Leaderboard[0].ID != ids[11] {
		t.Fatalf("expected highest scorer first")
	}
	for i := 1; i < len(leaderboard.Leaderboard); i++ {
		if leaderboard.Leaderboard[i].Score > leaderboard.Leaderboard[i-1].Score {
			t.Fatalf("leaderboard not sorted by score descending")
		}
	}

	if len(module.Store.Broadcasts()) == 0 {
		t.Fatalf("expected leaderboard broadcasts on mutation")
	}

	wiped, err := module.Handler.WipeAllHandler(context.Background())
	if err != nil {
		t.Fatalf("wipe failed: %v", err)
	}
	if wiped.Removed != 12 {
		t.Fatalf("expected 12 removed, got %d", wiped.Removed)
	}
	remaining, err := module.Handler.ListParticipantsHandler(context.Background())
	if err != nil {
		t.Fatalf("list after wipe failed: %v", err)
	}
	if len(remaining.Participants) != 0 {
		t.Fatalf("expected empty roster after wipe")
	}
}
