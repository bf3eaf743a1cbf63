// README: Websocket hub streaming tick batches to connected clients.
package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"tollsim/internal/modules/tracking"
)

const writeWait = 5 * time.Second

type client struct {
	id   string
	conn *websocket.Conn
	// serialises writes; gorilla connections allow one concurrent writer
	mu sync.Mutex
}

func (c *client) send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Hub fans every tick batch out to the connected websocket clients.
type Hub struct {
	upgrader  websocket.Upgrader
	clients   map[string]*client
	clientsMu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Serve upgrades the request and keeps the client registered until it
// disconnects. Messages sent by clients are ignored.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &client{id: uuid.NewString(), conn: conn}

	h.clientsMu.Lock()
	h.clients[c.id] = c
	h.clientsMu.Unlock()
	slog.Info("feed client connected", "client", c.id)

	defer func() {
		conn.Close()
		h.clientsMu.Lock()
		delete(h.clients, c.id)
		h.clientsMu.Unlock()
		slog.Info("feed client disconnected", "client", c.id)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// Notify sends b to every client. A failing client is dropped from the hub
// and does not affect the others.
func (h *Hub) Notify(ctx context.Context, b tracking.Batch) error {
	payload, err := json.Marshal(b)
	if err != nil {
		return err
	}

	h.clientsMu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.clientsMu.RUnlock()

	for _, c := range clients {
		if err := c.send(payload); err != nil {
			slog.Warn("dropping feed client", "client", c.id, "err", err)
			c.conn.Close()
		}
	}
	return nil
}
