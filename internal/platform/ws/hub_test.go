package ws

import (
	"context"
	"testing"

	"tiebreak/internal/shared/events"
)

func testClient(isAdmin bool, participantID string) *Client {
	return &Client{
		send:          make(chan events.Envelope, 4),
		isAdmin:       isAdmin,
		participantID: participantID,
	}
}

func TestDeliverRoutesByAudience(t *testing.T) {
	hub := NewHub(nil)
	admin := testClient(true, "")
	alice := testClient(false, "p1")
	bob := testClient(false, "p2")
	unjoined := testClient(false, "")

	hub.clients[admin] = true
	hub.clients[alice] = true
	hub.clients[bob] = true
	hub.clients[unjoined] = true

	hub.deliver(events.Envelope{Event: events.EventLeaderboardUpdate, Audience: events.AudienceAdmin})
	if len(admin.send) != 1 {
		t.Fatalf("admin events go to the admin room")
	}
	if len(alice.send) != 0 || len(bob.send) != 0 {
		t.Fatalf("admin events must not reach participants")
	}

	hub.deliver(events.Envelope{
		Event:         events.EventAnswerResult,
		Audience:      events.AudienceParticipant,
		ParticipantID: "p1",
	})
	if len(alice.send) != 1 {
		t.Fatalf("participant events go to the addressed participant")
	}
	if len(bob.send) != 0 {
		t.Fatalf("participant events must not reach other participants")
	}

	hub.deliver(events.Envelope{Event: events.EventQuestionReleased, Audience: events.AudienceAll})
	if len(admin.send) != 2 || len(alice.send) != 2 || len(bob.send) != 1 {
		t.Fatalf("broadcast events reach every joined client")
	}
	if len(unjoined.send) != 0 {
		t.Fatalf("clients that never joined a room receive nothing")
	}
}

func TestHandleJoinSetsRooms(t *testing.T) {
	hub := NewHub(nil)

	c := testClient(false, "")
	hub.handleJoin(joinRequest{client: c, msg: JoinMessage{Type: "joinAdmin"}})
	if !c.isAdmin {
		t.Fatalf("expected admin membership")
	}

	hub.handleJoin(joinRequest{client: c, msg: JoinMessage{Type: "joinParticipant", ParticipantID: "p1"}})
	if c.isAdmin || c.participantID != "p1" {
		t.Fatalf("expected participant membership for p1")
	}

	hub.handleJoin(joinRequest{client: c, msg: JoinMessage{Type: "joinParticipant"}})
	if c.participantID != "p1" {
		t.Fatalf("join without a participant id must be ignored")
	}

	hub.handleJoin(joinRequest{client: c, msg: JoinMessage{Type: "bogus"}})
	if c.participantID != "p1" {
		t.Fatalf("unknown join types must be ignored")
	}
}

func TestBroadcastDropsWhenQueueFull(t *testing.T) {
	hub := NewHub(nil)
	for i := 0; i < cap(hub.broadcasts); i++ {
		hub.Broadcast(context.Background(), events.Envelope{Event: events.EventVoteUpdate})
	}

	// Queue is full; one more must not block.
	hub.Broadcast(context.Background(), events.Envelope{Event: events.EventVoteUpdate})
}
