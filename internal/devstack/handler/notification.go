package handler

import (
	"net/http"

	"github.com/foodexpress/foodexpress-client/internal/devstack/ws"
	"github.com/foodexpress/foodexpress-client/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The stub serves local dev only.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type NotificationHandler struct {
	hub *ws.Hub
}

func NewNotificationHandler(hub *ws.Hub) *NotificationHandler {
	return &NotificationHandler{hub: hub}
}

// Subscribe upgrades to a websocket and streams order events. The bearer
// token arrives in the query string.
// GET /ws
func (h *NotificationHandler) Subscribe(c *gin.Context) {
	userID, exists := GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", err, map[string]interface{}{
			"user_id": userID,
		})
		return
	}

	client := &ws.Client{
		Hub:    h.hub,
		Conn:   conn,
		UserID: userID,
		Send:   make(chan []byte, 64),
	}
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
