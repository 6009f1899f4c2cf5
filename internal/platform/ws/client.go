package ws

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"tiebreak/internal/shared/events"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one websocket connection. Room membership is set by the join
// message it sends after connecting.
type Client struct {
	conn          *websocket.Conn
	send          chan events.Envelope
	isAdmin       bool
	participantID string
}

// ServeHTTP upgrades the request and runs the connection's pumps.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if h.logger != nil {
			h.logger.Warn("websocket upgrade failed",
				"event", "ws_upgrade_failed",
				"module", "internal/platform/ws",
				"layer", "platform",
				"error", err.Error(),
			)
		}
		return
	}

	client := &Client{
		conn: conn,
		send: make(chan events.Envelope, 16),
	}

	h.register <- client

	go client.writePump(h.logger)
	client.readPump(h)
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()

	for {
		var msg JoinMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		h.joins <- joinRequest{client: c, msg: msg}
	}
}

func (c *Client) writePump(logger *slog.Logger) {
	defer c.conn.Close()

	for event := range c.send {
		if err := c.conn.WriteJSON(event); err != nil {
			if logger != nil {
				logger.Warn("websocket write failed",
					"event", "ws_write_failed",
					"module", "internal/platform/ws",
					"layer", "platform",
					"error", err.Error(),
				)
			}
			return
		}
	}
}
