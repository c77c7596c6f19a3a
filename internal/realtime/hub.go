// Package realtime pushes order events to websocket listeners.
//
// Listeners connect to one of two namespaces: NamespacePublic for customer
// pages and NamespaceAdmin for staff pages. Delivery is best effort: an event
// published while nobody listens is gone, and a listener that cannot keep up
// loses messages instead of slowing the publisher down.
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
	"github.com/labstack/echo/v4"

	"github.com/faiadgitm-oss/trpical-try/internal/logging"
)

const (
	NamespacePublic = "/"
	NamespaceAdmin  = "/admin"

	EventNewOrder    = "new_order"
	EventOrderUpdate = "order_update"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

type Event struct {
	Name      string `json:"event"`
	Namespace string `json:"-"`
	Key       string `json:"-"`
	Data      any    `json:"data"`
}

type client struct {
	id        string
	namespace string
	conn      *websocket.Conn
	send      chan []byte
}

type Hub struct {
	mu       sync.RWMutex
	clients  map[string]map[*client]struct{}
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients: map[string]map[*client]struct{}{
			NamespacePublic: {},
			NamespaceAdmin:  {},
		},
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.namespace] == nil {
		h.clients[c.namespace] = map[*client]struct{}{}
	}
	h.clients[c.namespace][c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.namespace][c]; ok {
		delete(h.clients[c.namespace], c)
		close(c.send)
	}
}

func (h *Hub) ClientCount(namespace string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[namespace])
}

// Publish broadcasts ev to every listener of ev.Namespace.
func (h *Hub) Publish(ctx context.Context, ev Event) {
	l := logging.FromContext(ctx).With("component", "realtime.hub", "event", ev.Name, "namespace", ev.Namespace)

	msg, err := json.Marshal(ev)
	if err != nil {
		l.Error("publish_failed", "reason", "cannot encode event", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered, dropped := 0, 0
	for c := range h.clients[ev.Namespace] {
		select {
		case c.send <- msg:
			delivered++
		default:
			dropped++
		}
	}
	l.Debug("published", "delivered", delivered, "dropped", dropped)
}

// ServeWS upgrades the request and keeps the listener attached to namespace
// until the peer goes away.
func (h *Hub) ServeWS(namespace string) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context()).With("handler", "realtime.serve_ws", "namespace", namespace)

		conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			l.Warn("ws_upgrade_failed", "error", err)
			return nil
		}

		cl := &client{
			id:        uuid.NewString(),
			namespace: namespace,
			conn:      conn,
			send:      make(chan []byte, sendBuffer),
		}
		h.register(cl)
		l.Info("ws_connected", "client_id", cl.id)

		go cl.writePump()
		cl.readPump()

		h.unregister(cl)
		l.Info("ws_disconnected", "client_id", cl.id)
		return nil
	}
}

// Close disconnects every listener.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ns, set := range h.clients {
		for c := range set {
			close(c.send)
			delete(set, c)
		}
		h.clients[ns] = set
	}
}

// readPump drains client frames; listeners never send anything we act on.
func (c *client) readPump() {
	defer c.conn.Close()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("ws read error", "client_id", c.id, "error", err)
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
