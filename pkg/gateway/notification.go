package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
)

// Event is a push notification from the notification service.
type Event struct {
	Type    string `json:"type"`
	OrderID int64  `json:"order_id,omitempty"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

// EventStream is an open websocket subscription to the notification service.
type EventStream struct {
	conn   *websocket.Conn
	events chan Event
}

// Events delivers decoded notifications. The channel closes when the
// connection drops; reconnecting is the caller's decision.
func (s *EventStream) Events() <-chan Event {
	return s.events
}

// Close tears down the subscription.
func (s *EventStream) Close() error {
	return s.conn.Close()
}

// SubscribeEvents opens a websocket to the notification service. The bearer
// credential rides in the query string because browser websocket clients
// cannot set headers, and the service accepts both forms.
func (c *Client) SubscribeEvents(ctx context.Context, credential string) (*EventStream, error) {
	wsURL := strings.Replace(c.config.NotificationURL, "http", "ws", 1)
	wsURL = fmt.Sprintf("%s/ws?token=%s", wsURL, url.QueryEscape(credential))

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: subscribe events: %v", ErrUnavailable, err)
	}

	stream := &EventStream{
		conn:   conn,
		events: make(chan Event, 16),
	}

	go func() {
		defer close(stream.events)
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var event Event
			if err := json.Unmarshal(message, &event); err != nil {
				continue
			}
			stream.events <- event
		}
	}()

	return stream, nil
}
