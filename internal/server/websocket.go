package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/zeusync/softbody/internal/core/observability/log"
)

const (
	pongWait     = 60 * time.Second
	pingPeriod   = 30 * time.Second
	maxReadBytes = 4096

	defaultWriteTimeout = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one websocket viewer.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	hub  *Hub
}

// Hub fans snapshots out to the connected clients. A client whose send
// buffer is full is disconnected.
type Hub struct {
	clients      map[*Client]struct{}
	mu           sync.RWMutex
	closed       bool
	sendBuffer   int
	writeTimeout time.Duration
	logger       log.Log
}

func NewHub(sendBuffer int, writeTimeout time.Duration, logger log.Log) *Hub {
	if sendBuffer < 1 {
		sendBuffer = 1
	}
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	return &Hub{
		clients:      make(map[*Client]struct{}),
		sendBuffer:   sendBuffer,
		writeTimeout: writeTimeout,
		logger:       logger.With(log.String("component", "hub")),
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) register(conn *websocket.Conn) (*Client, error) {
	c := &Client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, h.sendBuffer),
		hub:  h,
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrServerClosed
	}
	h.clients[c] = struct{}{}
	h.logger.Debug("client connected",
		log.String("client_id", c.id),
		log.String("remote_addr", conn.RemoteAddr().String()),
	)
	return c, nil
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c, "disconnected")
}

func (h *Hub) removeLocked(c *Client, reason string) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.logger.Debug("client removed", log.String("client_id", c.id), log.String("reason", reason))
}

// Broadcast queues data for every client.
func (h *Hub) Broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.removeLocked(c, "send buffer full")
		}
	}
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c, "hub closed")
	}
}

// serveWS upgrades the request and pumps snapshots to the client. Text
// messages from the client are decoded as commands and passed to submit.
func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request, submit func(Command) error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", log.Error(err))
		return
	}
	c, err := h.register(conn)
	if err != nil {
		_ = conn.Close()
		return
	}
	go c.writePump()
	c.readPump(submit)
}

func (c *Client) readPump(submit func(Command) error) {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxReadBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("websocket read failed", log.String("client_id", c.id), log.Error(err))
			}
			return
		}
		var cmd Command
		if err = json.Unmarshal(message, &cmd); err != nil {
			c.hub.logger.Debug("malformed command", log.String("client_id", c.id), log.Error(err))
			continue
		}
		if err = submit(cmd); err != nil {
			c.hub.logger.Debug("command refused", log.String("client_id", c.id), log.Error(err))
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.hub.writeTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.hub.writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
