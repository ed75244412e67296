// Package ws relays order chat messages between the customer and the
// contractor over WebSocket. Messages are persisted first, then delivered
// to the peer if they are online; offline peers read the history later.
package ws

import (
	"log/slog"
	"sync"

	"autoservice/internal/core/domain/model/kernel"
)

// Conn is the subset of a WebSocket connection the hub needs.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

// Hub tracks the live connection of each user. A user has at most one
// connection: a reconnect replaces the previous one.
type Hub struct {
	mu      sync.RWMutex
	clients map[kernel.UUID]Conn
	logger  *slog.Logger
}

// NewHub creates an empty connection registry.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[kernel.UUID]Conn),
		logger:  logger.With("component", "ws_hub"),
	}
}

// Register adds the user's connection, closing the previous one if the
// user reconnects.
func (h *Hub) Register(userID kernel.UUID, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if previous, ok := h.clients[userID]; ok {
		_ = previous.Close()
	}
	h.clients[userID] = conn
}

// Unregister removes the user's connection, but only if it is still the
// one being unregistered. A stale read loop must not evict a reconnect.
func (h *Hub) Unregister(userID kernel.UUID, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.clients[userID]; ok && current == conn {
		delete(h.clients, userID)
	}
}

// Send delivers payload to the user's live connection. An offline user is
// not an error; they will read the persisted history on their next
// connection.
func (h *Hub) Send(userID kernel.UUID, payload any) {
	h.mu.RLock()
	conn, ok := h.clients[userID]
	h.mu.RUnlock()

	if !ok {
		return
	}
	if err := conn.WriteJSON(payload); err != nil {
		h.logger.Warn("chat delivery failed", "user_id", userID.String(), "error", err)
	}
}
