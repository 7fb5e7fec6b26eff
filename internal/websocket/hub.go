// Package websocket pushes entity-change events to connected clients so
// shared household screens stay in sync without polling.
package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Event describes one entity mutation. TribeID lets clients ignore events
// for tribes they are not showing; it is zero for tribe-less entities.
type Event struct {
	Entity  string         `json:"entity"`
	Action  string         `json:"action"`
	ID      int64          `json:"id,omitempty"`
	TribeID int64          `json:"tribe_id,omitempty"`
	Extra   map[string]any `json:"extra,omitempty"`
}

// Hub tracks connected clients and fans events out to all of them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.events)
	}
	h.mu.Unlock()
}

// Broadcast sends the event to every connected client. Slow clients whose
// buffers are full miss the event rather than blocking the sender.
func (h *Hub) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("marshal event", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.events <- data:
		default:
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
