package unit

import (
	"context"
	"testing"
	"time"

	adminauth "tiebreak/contexts/identity-access/admin-auth"
	httptransport "tiebreak/contexts/identity-access/admin-auth/transport/http"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func newAdminModule(clock *fixedClock) adminauth.Module {
	return adminauth.NewModule(adminauth.Dependencies{
		AdminPassword: "hunter2",
		Secret:        []byte("test-secret"),
		TokenTTL:      time.Hour,
		Clock:         clock,
	})
}

func TestAdminLoginIssuesValidToken(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	module := newAdminModule(clock)

	login, err := module.Handler.LoginHandler(context.Background(), httptransport.AdminLoginRequest{
		Password: "hunter2",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !login.Success || login.Token == "" {
		t.Fatalf("expected token on successful login, got %+v", login)
	}

	if err := module.Auth.Validate(context.Background(), login.Token); err != nil {
		t.Fatalf("freshly issued token should validate: %v", err)
	}
}

func TestAdminLoginRejectsWrongPassword(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	module := newAdminModule(clock)

	login, err := module.Handler.LoginHandler(context.Background(), httptransport.AdminLoginRequest{
		Password: "wrong",
	})
	if err != nil {
		t.Fatalf("bad password should map to success=false, got error: %v", err)
	}
	if login.Success || login.Token != "" {
		t.Fatalf("expected rejection without a token, got %+v", login)
	}
}

func TestAdminTokenExpires(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	module := newAdminModule(clock)

	login, err := module.Handler.LoginHandler(context.Background(), httptransport.AdminLoginRequest{
		Password: "hunter2",
	})
	if err != nil || !login.Success {
		t.Fatalf("login failed: %v", err)
	}

	clock.now = clock.now.Add(2 * time.Hour)
	if err := module.Auth.Validate(context.Background(), login.Token); err == nil {
		t.Fatalf("expected expired token rejection")
	}
}

func TestAdminValidateRejectsGarbage(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	module := newAdminModule(clock)

	for _, token := range []string{"", "   ", "not-a-jwt", "aaa.bbb.ccc"} {
		if err := module.Auth.Validate(context.Background(), token); err == nil {
			t.Fatalf("expected rejection for token %q", token)
		}
	}
}

func TestAdminValidateRejectsForeignSignature(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	issuer := adminauth.NewModule(adminauth.Dependencies{
		AdminPassword: "hunter2",
		Secret:        []byte("other-secret"),
		TokenTTL:      time.Hour,
		Clock:         clock,
	})
	verifier := newAdminModule(clock)

	login, err := issuer.Handler.LoginHandler(context.Background(), httptransport.AdminLoginRequest{
		Password: "hunter2",
	})
	if err != nil || !login.Success {
		t.Fatalf("login failed: %v", err)
	}
	if err := verifier.Auth.Validate(context.Background(), login.Token); err == nil {
		t.Fatalf("expected token signed with a different secret to be rejected")
	}
}
