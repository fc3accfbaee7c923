package notifications

import (
	"errors"
	"sync"

	"linksea/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const (
	// Max connections per user (multiple dashboard tabs).
	maxConnsPerUser = 8
	// Max total connections.
	maxTotalConns = 10000
)

// ClickHub maps userID -> dashboard feed connections on this instance.
type ClickHub struct {
	mu         sync.RWMutex
	conns      map[uint]map[*Client]struct{}
	totalConns int
}

// NewClickHub creates a hub with no connections.
func NewClickHub() *ClickHub {
	return &ClickHub{
		conns: make(map[uint]map[*Client]struct{}),
	}
}

// Register adds a connection for a user, enforcing per-user and global
// limits. Returns the Client whose pumps the caller must run.
func (h *ClickHub) Register(userID uint, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.totalConns >= maxTotalConns {
		return nil, errors.New("server connection limit reached")
	}

	m, ok := h.conns[userID]
	if !ok {
		m = make(map[*Client]struct{})
		h.conns[userID] = m
	}
	if len(m) >= maxConnsPerUser {
		return nil, errors.New("user connection limit reached")
	}

	client := newClient(h, conn, userID)
	m[client] = struct{}{}
	h.totalConns++
	observability.ClickFeedConnections.Inc()

	return client, nil
}

// Unregister removes a connection. Safe to call more than once per client.
func (h *ClickHub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	m, ok := h.conns[client.UserID]
	if !ok {
		return
	}
	if _, exists := m[client]; !exists {
		return
	}
	delete(m, client)
	if len(m) == 0 {
		delete(h.conns, client.UserID)
	}
	h.totalConns--
	observability.ClickFeedConnections.Dec()
}

// Broadcast sends a message to every connection a user has on this instance.
func (h *ClickHub) Broadcast(userID uint, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.conns[userID] {
		c.trySend(message)
	}
}

// ConnectionCount reports connections for a user on this instance.
func (h *ClickHub) ConnectionCount(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID])
}
