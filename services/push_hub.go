package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// Envelope is the push-channel message format, both directions.
type Envelope struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
	Role     string `json:"role"`
}

type WSClient struct {
	UserID string
	Conn   *websocket.Conn

	mu sync.Mutex // serializes writes; reads happen on one goroutine
}

func (c *WSClient) writeText(msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteMessage(websocket.TextMessage, msg)
}

// Ping goes through the same lock as data frames: gorilla allows only one
// concurrent writer per connection.
func (c *WSClient) Ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteMessage(websocket.PingMessage, nil)
}

// PushHub is the single shared push channel: one registry of connections per
// user, broadcast of agent progress/completion frames, raw text fan-out.
type PushHub struct {
	mu      sync.RWMutex
	clients map[string]map[*WSClient]struct{}
}

func NewPushHub() *PushHub {
	return &PushHub{clients: make(map[string]map[*WSClient]struct{})}
}

func (h *PushHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *PushHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// Broadcast sends an envelope to every connection of one user.
func (h *PushHub) Broadcast(userID string, env Envelope) {
	msg, _ := json.Marshal(env)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		_ = c.writeText(msg)
	}
}

// BroadcastText sends a bare text frame, used for the plain completion
// markers clients pattern-match on.
func (h *PushHub) BroadcastText(userID, text string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		_ = c.writeText([]byte(text))
	}
}
