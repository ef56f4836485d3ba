package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Duke242/mycontacts/internal/middleware"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now (adjust for production)
	},
}

// Event is the wire format pushed to dashboard clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type client struct {
	conn   *websocket.Conn
	send   chan []byte
	userID uuid.UUID
}

// EventHub fans dashboard events out to a user's connected clients. It
// satisfies domain.Notifier, so the services can push friend request
// and connection changes without depending on the websocket layer.
type EventHub struct {
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	// Map userID to active clients (a user may have several tabs open)
	userClients map[uuid.UUID]map[*client]bool
	mu          sync.RWMutex
	logger      *zap.Logger
}

// NewEventHub creates a new event hub.
func NewEventHub(logger *zap.Logger) *EventHub {
	return &EventHub{
		clients:     make(map[*client]bool),
		register:    make(chan *client),
		unregister:  make(chan *client),
		userClients: make(map[uuid.UUID]map[*client]bool),
		logger:      logger,
	}
}

// Run processes register and unregister requests. Call it in its own
// goroutine before serving connections.
func (h *EventHub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			if _, ok := h.userClients[c.userID]; !ok {
				h.userClients[c.userID] = make(map[*client]bool)
			}
			h.userClients[c.userID][c] = true
			h.mu.Unlock()
			h.logger.Debug("event client registered", zap.String("user_id", c.userID.String()))

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				if userMap, ok := h.userClients[c.userID]; ok {
					delete(userMap, c)
					if len(userMap) == 0 {
						delete(h.userClients, c.userID)
					}
				}
				close(c.send)
				h.logger.Debug("event client unregistered", zap.String("user_id", c.userID.String()))
			}
			h.mu.Unlock()
		}
	}
}

// Notify sends an event to all of a user's connected clients. Users
// with no open dashboard simply miss the push; the REST endpoints stay
// the source of truth.
func (h *EventHub) Notify(userID uuid.UUID, event string, payload interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.userClients[userID]
	if !ok {
		return
	}

	msg, err := json.Marshal(Event{Type: event, Payload: payload})
	if err != nil {
		h.logger.Error("failed to marshal event", zap.Error(err))
		return
	}

	for c := range clients {
		select {
		case c.send <- msg:
		default:
			// Slow client; drop the event rather than block the caller.
		}
	}
}

// Serve handles GET /ws. The route sits behind the auth middleware, so
// the user is already identified by the time we upgrade.
func (h *EventHub) Serve(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		conn:   conn,
		send:   make(chan []byte, 16),
		userID: userID,
	}
	h.register <- c

	go c.writePump()
	go c.readPump(h)
}

func (c *client) readPump(h *EventHub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()

	// Events only flow server to client; reads just detect disconnects.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)

		// Flush any queued events into the same frame.
		n := len(c.send)
		for i := 0; i < n; i++ {
			w.Write(<-c.send)
		}

		if err := w.Close(); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
