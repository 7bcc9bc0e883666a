// Package realtime keeps one set of live websocket connections per user and
// pushes JSON frames to them.
package realtime

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskflow-api/internal/auth"
	"github.com/BuzzLyutic/taskflow-api/pkg/respond"
)

// Frame is what a client receives for every push.
type Frame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) write(frame Frame, wait time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if wait > 0 {
		c.ws.SetWriteDeadline(time.Now().Add(wait))
	}
	return c.ws.WriteJSON(frame)
}

type Hub struct {
	mu        sync.RWMutex
	clients   map[string]map[*conn]struct{}
	upgrader  websocket.Upgrader
	writeWait time.Duration
	logger    *zap.Logger
}

// NewHub builds a hub that accepts upgrades from allowedOrigins. "*" allows
// any origin; requests without an Origin header are not from a browser and are
// always accepted.
func NewHub(writeWait time.Duration, allowedOrigins []string, logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[*conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		writeWait: writeWait,
		logger:    logger,
	}
}

// originChecker matches the Origin header of an upgrade request. Browsers do
// not apply CORS to websocket handshakes, so the hub checks it itself.
func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[strings.ToLower(strings.TrimSuffix(o, "/"))] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[strings.ToLower(origin)]
		return ok
	}
}

// Emit writes one frame to every live connection of recipientID. A recipient
// without connections is silently skipped. Connections that fail to write are
// dropped and the last write error is returned.
func (h *Hub) Emit(recipientID, event string, payload any) error {
	h.mu.RLock()
	conns := make([]*conn, 0, len(h.clients[recipientID]))
	for c := range h.clients[recipientID] {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	var lastErr error
	for _, c := range conns {
		if err := c.write(Frame{Event: event, Data: payload}, h.writeWait); err != nil {
			lastErr = err
			h.remove(recipientID, c)
		}
	}
	return lastErr
}

// Connected reports how many live connections recipientID has.
func (h *Hub) Connected(recipientID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[recipientID])
}

// ServeHTTP upgrades the request and registers the connection under the
// authenticated actor. It blocks until the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFrom(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "unauthenticated")
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.String("user_id", actor.ID), zap.Error(err))
		return
	}

	c := &conn{ws: ws}
	h.add(actor.ID, c)
	h.logger.Debug("realtime client connected", zap.String("user_id", actor.ID))

	// Clients never send anything we act on; reading only detects the close.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(actor.ID, c)
	h.logger.Debug("realtime client disconnected", zap.String("user_id", actor.ID))
}

func (h *Hub) add(userID string, c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*conn]struct{})
	}
	h.clients[userID][c] = struct{}{}
}

func (h *Hub) remove(userID string, c *conn) {
	h.mu.Lock()
	set, ok := h.clients[userID]
	if ok {
		if _, present := set[c]; present {
			delete(set, c)
			if len(set) == 0 {
				delete(h.clients, userID)
			}
		} else {
			ok = false
		}
	}
	h.mu.Unlock()

	if ok {
		c.ws.Close()
	}
}

// Close drops every connection.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[string]map[*conn]struct{})
	h.mu.Unlock()

	for _, set := range clients {
		for c := range set {
			c.ws.Close()
		}
	}
}
