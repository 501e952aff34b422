// Package websocket pushes unlock events to the connected clients of a user.
package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/tahcohcat/capsule-achievements/internal/logger"
	"github.com/tahcohcat/capsule-achievements/internal/models"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 32
)

// Event is the message sent to clients.
type Event struct {
	Type         string                         `json:"type"`
	UserID       string                         `json:"user_id"`
	Achievements []models.AchievementDefinition `json:"achievements"`
	SentAt       time.Time                      `json:"sent_at"`
}

type message struct {
	userID string
	data   []byte
}

type Hub struct {
	mu         sync.RWMutex
	clients    map[string]map[*Client]bool
	broadcast  chan message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	upgrader   websocket.Upgrader
	logger     *logger.Log
}

type Client struct {
	hub    *Hub
	userID string
	conn   *websocket.Conn
	send   chan []byte
}

// NewHub returns a hub accepting upgrades from the given browser origins,
// the same list the CORS layer uses. "*" admits any origin; with no origins
// only same-host requests are upgraded.
func NewHub(allowedOrigins ...string) *Hub {
	h := &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger.New(),
	}
	if len(allowedOrigins) > 0 {
		h.upgrader.CheckOrigin = originChecker(allowedOrigins)
	}
	return h
}

// originChecker admits requests without an Origin header (non-browser
// clients) and those whose origin is listed.
func originChecker(allowed []string) func(*http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[strings.ToLower(strings.TrimSuffix(o, "/"))] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || set["*"] {
			return true
		}
		return set[strings.ToLower(origin)]
	}
}

// Run dispatches messages until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for _, set := range h.clients {
				for client := range set {
					close(client.send)
				}
			}
			h.clients = make(map[string]map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.userID] == nil {
				h.clients[client.userID] = make(map[*Client]bool)
			}
			h.clients[client.userID][client] = true
			h.mu.Unlock()
			h.logger.Debug(fmt.Sprintf("client for %s connected", client.userID))

		case client := <-h.unregister:
			h.remove(client)

		case msg := <-h.broadcast:
			h.mu.RLock()
			var slow []*Client
			for client := range h.clients[msg.userID] {
				select {
				case client.send <- msg.data:
				default:
					slow = append(slow, client)
				}
			}
			h.mu.RUnlock()
			for _, client := range slow {
				h.remove(client)
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.clients[client.userID]
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
	h.logger.Debug(fmt.Sprintf("client for %s disconnected", client.userID))
}

// ClientCount returns the number of connections open for userID.
func (h *Hub) ClientCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// NotifyUnlocked queues an unlock event for the user's clients. It never
// blocks: when the hub is saturated the event is dropped.
func (h *Hub) NotifyUnlocked(userID string, unlocked []models.AchievementDefinition) {
	data, err := json.Marshal(Event{
		Type:         "achievements_unlocked",
		UserID:       userID,
		Achievements: unlocked,
		SentAt:       time.Now().UTC(),
	})
	if err != nil {
		h.logger.WithError(err).Warn("encoding unlock event")
		return
	}
	select {
	case h.broadcast <- message{userID: userID, data: data}:
	default:
		h.logger.Warn(fmt.Sprintf("hub saturated, unlock event for %s dropped", userID))
	}
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.WithError(err).Warn("websocket read")
			}
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			c.hub.logger.WithError(err).Warn("websocket write")
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// ServeWS upgrades the request and subscribes it to the events of userFn(r).
func (h *Hub) ServeWS(userFn func(r *http.Request) string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userFn(r)
		if userID == "" {
			http.Error(w, "user required", http.StatusBadRequest)
			return
		}

		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.WithError(err).Warn("websocket upgrade")
			return
		}

		client := &Client{hub: h, userID: userID, conn: conn, send: make(chan []byte, sendBuffer)}
		select {
		case h.register <- client:
		case <-h.done:
			conn.Close()
			return
		}

		go client.writePump()
		go client.readPump()
	}
}

// RegisterRoutes mounts GET /ws. The user comes from userFn, typically the
// session, falling back to the "user" query parameter.
func RegisterRoutes(r *mux.Router, hub *Hub, userFn func(r *http.Request) string) {
	r.HandleFunc("/ws", hub.ServeWS(userFn)).Methods("GET")
}
