// Package notifications delivers live click feed events to dashboard
// WebSocket connections, fanned out across instances via Redis pub/sub.
package notifications

import (
	"log/slog"
	"time"

	"linksea/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Feed clients never send application data; anything larger is abuse.
	maxMessageSize = 512
)

// Client wraps one dashboard WebSocket connection registered with the hub.
type Client struct {
	hub *ClickHub

	// The websocket connection.
	conn *websocket.Conn

	// Buffered channel of outbound messages.
	send chan []byte

	// UserID for this client
	UserID uint
}

func newClient(hub *ClickHub, conn *websocket.Conn, userID uint) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		UserID: userID,
		send:   make(chan []byte, 64),
	}
}

// ReadPump drains the connection until the peer goes away. The feed is
// one-directional, so incoming frames are discarded; the pump exists to
// process control frames and detect the close.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { _ = c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Debug("click feed read ended", "user_id", c.UserID, "err", err)
			}
			return
		}
	}
}

// WritePump forwards hub messages to the connection and keeps it alive
// with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// trySend queues a message without blocking. A full buffer drops the message:
// feed events only prompt the dashboard to re-fetch, so a gap costs nothing.
func (c *Client) trySend(message []byte) {
	defer func() {
		if r := recover(); r != nil {
			observability.ClickFeedDrops.WithLabelValues("closed").Inc()
		}
	}()

	select {
	case c.send <- message:
	default:
		observability.ClickFeedDrops.WithLabelValues("full").Inc()
	}
}
