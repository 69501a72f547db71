// Package ws pushes order-status events to subscribed clients.
package ws

import (
	"encoding/json"
	"sync"

	"github.com/foodexpress/foodexpress-client/pkg/logger"
	"github.com/gorilla/websocket"
)

// Event is the wire shape of one push notification.
type Event struct {
	Type    string `json:"type"`
	OrderID uint   `json:"order_id,omitempty"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

// Client is one websocket session. Send is drained by the connection's
// writer goroutine.
type Client struct {
	Hub    *Hub
	Conn   *websocket.Conn
	UserID uint
	Send   chan []byte
}

// Hub tracks connected clients per user. A user may hold several sessions.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint][]*Client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[uint][]*Client),
	}
}

// Register adds a session for the user.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client.UserID] = append(h.clients[client.UserID], client)
	sessions := len(h.clients[client.UserID])
	h.mu.Unlock()

	logger.Info("WebSocket client registered", map[string]interface{}{
		"user_id":        client.UserID,
		"total_sessions": sessions,
	})
}

// Unregister removes a session and closes its send channel.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessions, ok := h.clients[client.UserID]
	if !ok {
		return
	}

	remaining := make([]*Client, 0, len(sessions))
	for _, c := range sessions {
		if c != client {
			remaining = append(remaining, c)
		}
	}
	if len(remaining) == 0 {
		delete(h.clients, client.UserID)
	} else {
		h.clients[client.UserID] = remaining
	}
	close(client.Send)

	logger.Info("WebSocket client unregistered", map[string]interface{}{
		"user_id":            client.UserID,
		"remaining_sessions": len(remaining),
	})
}

// SendToUser delivers an event to every session of one user. Sessions with a
// full send buffer are skipped; the event is a notification, not state.
func (h *Hub) SendToUser(userID uint, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal event", err, nil)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[userID] {
		select {
		case client.Send <- data:
		default:
			logger.Warn("Client send buffer full, event dropped", map[string]interface{}{
				"user_id": userID,
			})
		}
	}
}

// IsUserOnline reports whether the user has at least one session.
func (h *Hub) IsUserOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}
