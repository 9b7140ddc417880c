// Package stream is the transport collaborator for the engine: it fans
// snapshots out to websocket subscribers and turns HTTP requests into
// mutations on the live chain. The engine itself knows nothing about
// delivery; it only fills the channel the hub drains.
package stream

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/davfen/pendsim/internal/engine"
)

const (
	writeWait      = 10 * time.Second
	pingInterval   = 30 * time.Second
	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client is one websocket subscriber with a buffered outbound queue.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks the set of connected subscribers and broadcasts each
// snapshot to all of them. A slow subscriber's frames are dropped rather
// than letting it stall the sampling loop.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	log     *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{clients: make(map[string]*Client), log: log}
}

// Run drains the snapshot channel into Broadcast until the context is
// cancelled or the channel is closed, then disconnects every client.
func (h *Hub) Run(ctx context.Context, in <-chan engine.Snapshot) {
	defer h.closeAll()
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-in:
			if !ok {
				return
			}
			h.Broadcast(snap)
		}
	}
}

// Broadcast marshals the snapshot once and queues it to every client.
func (h *Hub) Broadcast(snap engine.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		h.log.Error("marshal snapshot failed", "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Buffer full; this subscriber misses a frame.
		}
	}
}

func (h *Hub) NumClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS upgrades the request and runs the client's pumps until the
// connection drops.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", "err", err)
		return
	}

	c := &Client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	h.log.Info("subscriber connected", "client", c.id, "total", h.NumClients())

	go c.writePump()
	c.readPump(h)
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	c, ok := h.clients[id]
	if ok {
		delete(h.clients, id)
		close(c.send)
	}
	h.mu.Unlock()
	if ok {
		h.log.Info("subscriber disconnected", "client", id)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.send)
	}
}

// readPump discards inbound frames; its job is noticing the close.
func (c *Client) readPump(h *Hub) {
	defer func() {
		h.remove(c.id)
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
