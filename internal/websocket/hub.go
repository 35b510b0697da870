package websocket

import (
	"context"
	"sync"

	"mortgage-connect-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// Hub tracks the open chat sockets, one per form session.
type Hub struct {
	clients map[uuid.UUID]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// done is closed when Run returns.
	done chan struct{}

	mu sync.RWMutex

	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID]*Client),
		done:       make(chan struct{}),
		logger:     log,
	}
}

// Run serves register and unregister requests until ctx is done, then closes
// every remaining client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if old, ok := h.clients[client.SessionID]; ok && old != client {
				old.close()
			}
			h.clients[client.SessionID] = client
			h.mu.Unlock()
			h.logger.Info("Hub", "Chat client registered", map[string]interface{}{"session_id": client.SessionID.String()})

		case client := <-h.unregister:
			h.mu.Lock()
			if cur, ok := h.clients[client.SessionID]; ok && cur == client {
				delete(h.clients, client.SessionID)
			}
			h.mu.Unlock()
			client.close()
			h.logger.Info("Hub", "Chat client unregistered", map[string]interface{}{"session_id": client.SessionID.String()})

		case <-ctx.Done():
			h.mu.Lock()
			for id, client := range h.clients {
				client.close()
				delete(h.clients, id)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Count reports how many chats are connected.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) add(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		c.close()
	}
}

func (h *Hub) remove(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
		c.close()
	}
}
