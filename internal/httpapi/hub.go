package httpapi

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/talkdeck/talkdeck/pkg/ui"
)

// EventType discriminates pushed frames.
type EventType string

const (
	// EventNotification carries a newly added notification.
	EventNotification EventType = "notification"
	// EventTalks signals that the talk collection was refreshed.
	EventTalks EventType = "talks"
)

// Event is the frame sent to WebSocket clients.
type Event struct {
	Type         EventType        `json:"type"`
	Notification *ui.Notification `json:"notification,omitempty"`
	Count        int              `json:"count,omitempty"`
}

// Hub manages WebSocket connections and broadcasts events.
type Hub struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWebSocket upgrades the request and holds the connection open
// until the client disconnects. Clients only receive; inbound messages
// are drained and dropped.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// ObserveNotification pushes a notification frame to all clients.
// Shaped to plug into ui.WithNotifyObserver.
func (h *Hub) ObserveNotification(n ui.Notification) {
	h.broadcast(Event{Type: EventNotification, Notification: &n})
}

// NotifyTalksRefreshed pushes a refresh frame with the new collection
// size.
func (h *Hub) NotifyTalksRefreshed(count int) {
	h.broadcast(Event{Type: EventTalks, Count: count})
}

func (h *Hub) broadcast(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			h.mu.Lock()
			delete(h.clients, client)
			h.mu.Unlock()
			client.Close()
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects all clients.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}
