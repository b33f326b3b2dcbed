package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// Pings and broadcasts hit the same connection from different goroutines;
// both must go through the client's write lock or gorilla panics on the
// concurrent write.
func TestPingAndBroadcastShareWriteLock(t *testing.T) {
	hub := NewPushHub()
	upgrader := websocket.Upgrader{}
	done := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		cl := &WSClient{UserID: "u1", Conn: conn}
		hub.Register(cl)

		var wg sync.WaitGroup
		wg.Add(3)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if err := cl.Ping(); err != nil {
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				hub.Broadcast("u1", Envelope{MimeType: "text/plain", Data: "tick", Role: "model"})
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				hub.BroadcastText("u1", "[ANALYSER_AGENT] segmentation complete")
			}
		}()
		wg.Wait()

		hub.Unregister(cl)
		close(done)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// drain frames so the server's writes never block; pings are answered
	// inside ReadMessage
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("writers did not finish")
	}
}
