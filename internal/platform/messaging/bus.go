package messaging

import (
	"context"
	"log/slog"
	"sync"

	"tiebreak/internal/shared/events"
)

// Bus is the in-process broadcast fan-out between module notifiers and the
// websocket hub. Subscribers get buffered channels; a full buffer drops the
// event for that subscriber rather than blocking publishers.
type Bus struct {
	mu          sync.RWMutex
	subscribers []chan events.Envelope
	logger      *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	return &Bus{logger: logger}
}

func (b *Bus) Publish(ctx context.Context, event events.Envelope) error {
	b.mu.RLock()
	subs := append([]chan events.Envelope(nil), b.subscribers...)
	b.mu.RUnlock()

	for _, sub := range subs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sub <- event:
		default:
			if b.logger != nil {
				b.logger.Warn("dropping event for slow subscriber",
					"event", "bus_publish_drop",
					"module", "internal/platform/messaging",
					"layer", "platform",
					"broadcast_event", event.Event,
				)
			}
		}
	}

	if b.logger != nil {
		b.logger.Info("event published",
			"event", "bus_publish",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"broadcast_event", event.Event,
			"audience", string(event.Audience),
		)
	}
	return nil
}

// Subscribe registers a handler that runs on its own goroutine until ctx ends.
func (b *Bus) Subscribe(ctx context.Context, handler func(context.Context, events.Envelope)) {
	ch := make(chan events.Envelope, 128)

	b.mu.Lock()
	b.subscribers = append(b.subscribers, ch)
	b.mu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				b.removeSubscriber(ch)
				return
			case event := <-ch:
				handler(ctx, event)
			}
		}
	}()
}

func (b *Bus) removeSubscriber(target chan events.Envelope) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.subscribers) == 0 {
		return
	}
	filtered := make([]chan events.Envelope, 0, len(b.subscribers))
	for _, item := range b.subscribers {
		if item != target {
			filtered = append(filtered, item)
		}
	}
	b.subscribers = filtered
}
