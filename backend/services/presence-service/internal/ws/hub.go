package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"accessboard/backend/libs/presence"
)

// Hub fans freshly imported scans out to connected dashboard clients. It is
// one-way: clients only listen.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *zap.Logger
}

// NewHub builds an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// Add registers a client.
func (h *Hub) Add(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

// Remove drops a client.
func (h *Hub) Remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends the events to every connected client. Slow clients get
// skipped rather than blocking the import path.
func (h *Hub) Broadcast(events []presence.AccessEvent) {
	if len(events) == 0 {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{"events": events})
	if err != nil {
		h.logger.Warn("failed to encode activity payload", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		client.TrySend(payload)
	}
}
