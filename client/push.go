package client

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// WebSocketChannel adapts one gorilla connection to the PushChannel
// interface. Inbound text frames are handed to onFrame from a single read
// goroutine; handling is synchronous per message.
type WebSocketChannel struct {
	mu      sync.Mutex
	conn    *websocket.Conn
	onFrame func(string)
}

func NewWebSocketChannel(onFrame func(string)) *WebSocketChannel {
	return &WebSocketChannel{onFrame: onFrame}
}

// Connect dials the push endpoint and starts the read loop.
func (w *WebSocketChannel) Connect(wsURL string) error {
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.conn = conn
	w.mu.Unlock()

	go w.readLoop(conn)
	return nil
}

func (w *WebSocketChannel) readLoop(conn *websocket.Conn) {
	defer func() {
		w.mu.Lock()
		if w.conn == conn {
			w.conn = nil
		}
		w.mu.Unlock()
		conn.Close()
	}()
	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		if w.onFrame != nil {
			w.onFrame(string(data))
		}
	}
}

// Send marshals an envelope onto the channel.
func (w *WebSocketChannel) Send(env Envelope) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn == nil {
		return websocket.ErrCloseSent
	}
	payload, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return w.conn.WriteMessage(websocket.TextMessage, payload)
}

// Connected reports whether a dial succeeded and the read loop is alive.
func (w *WebSocketChannel) Connected() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn != nil
}

// Close tears the connection down.
func (w *WebSocketChannel) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn == nil {
		return nil
	}
	err := w.conn.Close()
	w.conn = nil
	return err
}
