package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/kpsunited/kps-admin-backend/pkg/logger"
)

// Event is pushed to every connected console when a record changes, so
// open dashboards can refresh without polling.
type Event struct {
	Entity string    `json:"entity"`
	Action string    `json:"action"`
	At     time.Time `json:"at"`
}

// Hub manages the connected admin consoles and fans change events out
// to all of them.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		broadcast:  make(chan []byte, 256),
	}
}

// Run processes registrations and broadcasts. Call in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			logger.Info("Console connected", map[string]interface{}{
				"total_connections": total,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			logger.Info("Console disconnected", map[string]interface{}{
				"total_connections": total,
			})

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Send buffer full: drop the slow client.
					go h.Unregister(client)
					logger.Warn("Console send buffer full, disconnecting", nil)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// NotifyChange implements the service layer's change notifier. Events
// are best-effort: a full broadcast channel drops the event rather than
// blocking a write path.
func (h *Hub) NotifyChange(entity, action string) {
	data, err := json.Marshal(Event{
		Entity: entity,
		Action: action,
		At:     time.Now().UTC(),
	})
	if err != nil {
		logger.Error("Failed to marshal change event", err, nil)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		logger.Warn("Broadcast channel full, event dropped", map[string]interface{}{
			"entity": entity,
			"action": action,
		})
	}
}

// Register queues a client for registration.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister queues a client for removal.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// ConnectionCount returns the number of connected consoles.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
