// Package feed streams engine events to WebSocket subscribers. The
// block pipeline publishes each block's drained events in order; slow
// subscribers are dropped rather than allowed to stall the feed.
package feed

import (
	"net/http"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/openwager/betchain/internal/events"
)

const (
	writeTimeout   = 5 * time.Second
	sendBufferSize = 256
)

// envelope is the wire form of one event.
type envelope struct {
	Type string       `json:"type"`
	Data events.Event `json:"data"`
}

// Hub fans engine events out to connected WebSocket clients.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *zap.Logger

	mu      sync.RWMutex
	clients map[*client]bool
	closed  bool
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates an event hub with no clients.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger:  logger,
		clients: make(map[*client]bool),
	}
}

// Handler upgrades the request and registers the subscriber.
func (h *Hub) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn("feed-upgrade-failed", zap.Error(err))
			return
		}

		c := &client{
			conn: conn,
			send: make(chan []byte, sendBufferSize),
		}

		h.mu.Lock()
		if h.closed {
			h.mu.Unlock()
			conn.Close()
			return
		}
		h.clients[c] = true
		clientCount := len(h.clients)
		h.mu.Unlock()

		ActiveSubscribers.Set(float64(clientCount))

		h.logger.Info("feed-subscriber-connected",
			zap.String("remote-addr", r.RemoteAddr),
			zap.Int("subscribers", clientCount))

		go h.writeLoop(c)
		go h.readLoop(c)
	}
}

// Publish broadcasts one event to every subscriber. Implements
// events.Sink; called from the block pipeline in emission order.
func (h *Hub) Publish(ev events.Event) {
	payload, err := json.Marshal(envelope{Type: ev.Name(), Data: ev})
	if err != nil {
		h.logger.Error("feed-marshal-failed",
			zap.String("event-type", ev.Name()),
			zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			EventsDroppedTotal.Inc()
		}
	}

	EventsBroadcastTotal.WithLabelValues(ev.Name()).Inc()
}

// writeLoop drains the client's send buffer onto the wire.
func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()

	for payload := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.Debug("feed-write-failed", zap.Error(err))
			h.remove(c)
			return
		}
	}
}

// readLoop discards inbound frames and detects disconnects. The feed
// is one-way; clients only ever close.
func (h *Hub) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.remove(c)
			return
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if !h.clients[c] {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	close(c.send)
	clientCount := len(h.clients)
	h.mu.Unlock()

	c.conn.Close()
	ActiveSubscribers.Set(float64(clientCount))

	h.logger.Info("feed-subscriber-disconnected", zap.Int("subscribers", clientCount))
}

// Close disconnects every subscriber and rejects new ones.
func (h *Hub) Close() error {
	h.mu.Lock()
	h.closed = true
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
		delete(h.clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		close(c.send)
		c.conn.Close()
	}

	ActiveSubscribers.Set(0)
	h.logger.Info("feed-closed", zap.Int("disconnected", len(clients)))

	return nil
}
