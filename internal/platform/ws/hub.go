package ws

import (
	"context"
	"log/slog"
	"sync"

	"tiebreak/internal/shared/events"
)

// Hub fans broadcast envelopes out to connected websocket clients. Clients
// join either the admin room or a per-participant room; envelopes carry the
// audience that decides which rooms receive them.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	joins      chan joinRequest
	broadcasts chan events.Envelope
	logger     *slog.Logger

	mu sync.RWMutex
}

type joinRequest struct {
	client *Client
	msg    JoinMessage
}

// JoinMessage is the first message a client sends after connecting.
type JoinMessage struct {
	Type          string `json:"type"`
	ParticipantID string `json:"participant_id,omitempty"`
}

const (
	joinTypeAdmin       = "joinAdmin"
	joinTypeParticipant = "joinParticipant"
)

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		joins:      make(chan joinRequest),
		broadcasts: make(chan events.Envelope, 128),
		logger:     logger,
	}
}

// Run processes registrations, joins, and broadcasts until ctx ends.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()

		case req := <-h.joins:
			h.handleJoin(req)

		case event := <-h.broadcasts:
			h.deliver(event)
		}
	}
}

// Broadcast queues an envelope for delivery. It is the Bus subscriber side.
func (h *Hub) Broadcast(_ context.Context, event events.Envelope) {
	select {
	case h.broadcasts <- event:
	default:
		if h.logger != nil {
			h.logger.Warn("dropping broadcast, hub queue full",
				"event", "ws_broadcast_drop",
				"module", "internal/platform/ws",
				"layer", "platform",
				"broadcast_event", event.Event,
			)
		}
	}
}

func (h *Hub) handleJoin(req joinRequest) {
	switch req.msg.Type {
	case joinTypeAdmin:
		req.client.isAdmin = true
		req.client.participantID = ""
	case joinTypeParticipant:
		if req.msg.ParticipantID == "" {
			return
		}
		req.client.isAdmin = false
		req.client.participantID = req.msg.ParticipantID
	default:
		return
	}

	if h.logger != nil {
		h.logger.Info("client joined",
			"event", "ws_client_joined",
			"module", "internal/platform/ws",
			"layer", "platform",
			"join_type", req.msg.Type,
			"participant_id", req.msg.ParticipantID,
		)
	}
}

func (h *Hub) deliver(event events.Envelope) {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		if h.wants(c, event) {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		select {
		case c.send <- event:
		default:
			// Slow client; drop the frame rather than stall the hub.
		}
	}
}

func (h *Hub) wants(c *Client, event events.Envelope) bool {
	switch event.Audience {
	case events.AudienceAdmin:
		return c.isAdmin
	case events.AudienceParticipant:
		return !c.isAdmin && c.participantID == event.ParticipantID
	default:
		return c.isAdmin || c.participantID != ""
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
