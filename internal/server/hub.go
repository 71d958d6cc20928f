package server

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/sakchai-01/school-pos/internal/notify"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub relays notification events to connected dashboard sockets. Shop
// dashboards use it to see availability flips and incoming orders without
// polling.
type Hub struct {
	center *notify.Center

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
	done  chan struct{}
	once  sync.Once
}

// NewHub creates a hub publishing the center's events.
func NewHub(center *notify.Center) *Hub {
	return &Hub{
		center: center,
		conns:  make(map[*websocket.Conn]struct{}),
		done:   make(chan struct{}),
	}
}

// Run starts the broadcast loop.
func (h *Hub) Run() {
	events := h.center.Subscribe()
	go func() {
		for {
			select {
			case ev := <-events:
				h.broadcast(ev)
			case <-h.done:
				return
			}
		}
	}()
}

// Stop ends the broadcast loop and closes all client connections.
func (h *Hub) Stop() {
	h.once.Do(func() { close(h.done) })

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		conn.Close()
	}
	h.conns = make(map[*websocket.Conn]struct{})
}

// HandleWebSocket upgrades the request and keeps the connection registered
// until the client goes away.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("hub: websocket upgrade: %v", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.conns, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	// Clients only listen; reading drains control frames and detects close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("hub: websocket read: %v", err)
			}
			return
		}
	}
}

func (h *Hub) broadcast(ev notify.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		if err := conn.WriteJSON(ev); err != nil {
			conn.Close()
			delete(h.conns, conn)
		}
	}
}
