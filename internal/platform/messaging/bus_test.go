package messaging

import (
	"context"
	"testing"
	"time"

	"tiebreak/internal/shared/events"
)

func TestBusDeliversToSubscribers(t *testing.T) {
	bus := NewBus(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan events.Envelope, 2)
	bus.Subscribe(ctx, func(_ context.Context, event events.Envelope) {
		received <- event
	})
	bus.Subscribe(ctx, func(_ context.Context, event events.Envelope) {
		received <- event
	})

	if err := bus.Publish(context.Background(), events.Envelope{
		Event:    events.EventLeaderboardUpdate,
		Audience: events.AudienceAll,
	}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		select {
		case event := <-received:
			if event.Event != events.EventLeaderboardUpdate {
				t.Fatalf("unexpected event %q", event.Event)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("subscriber %d never received the event", i)
		}
	}
}

func TestBusPublishWithoutSubscribers(t *testing.T) {
	bus := NewBus(nil)
	if err := bus.Publish(context.Background(), events.Envelope{
		Event: events.EventQuestionReleased,
	}); err != nil {
		t.Fatalf("publish with no subscribers must succeed: %v", err)
	}
}

func TestBusUnsubscribesOnContextCancel(t *testing.T) {
	bus := NewBus(nil)
	ctx, cancel := context.WithCancel(context.Background())

	received := make(chan events.Envelope, 1)
	bus.Subscribe(ctx, func(_ context.Context, event events.Envelope) {
		received <- event
	})
	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for {
		bus.mu.RLock()
		remaining := len(bus.subscribers)
		bus.mu.RUnlock()
		if remaining == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("subscriber never removed after cancel")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := bus.Publish(context.Background(), events.Envelope{
		Event: events.EventVoteUpdate,
	}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	select {
	case <-received:
		t.Fatalf("cancelled subscriber must not receive events")
	case <-time.After(50 * time.Millisecond):
	}
}
