// Package live pushes dashboard refresh events over WebSockets. Clients
// subscribe to view names and receive a notification whenever the data
// behind that view may have moved, most importantly when the demo clock
// is scrubbed. The payload carries no rows; clients refetch the view.
package live

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Event tells a subscribed client that a view needs refreshing. Type is
// "clock-changed" when the demo override moved (sent to every client) or
// "view-changed" for a single view's topic.
type Event struct {
	Type      string    `json:"type"`
	View      string    `json:"view,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// subscribeMessage is the only inbound message shape clients send.
type subscribeMessage struct {
	Action string   `json:"action"`
	Views  []string `json:"views"`
}

type client struct {
	id    string
	views map[string]struct{}
	send  chan []byte
}

// Hub tracks connected dashboard clients and their view subscriptions.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		log:     log,
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

func (h *Hub) process(c *client, msg subscribeMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch msg.Action {
	case "subscribe":
		for _, v := range msg.Views {
			c.views[v] = struct{}{}
		}
	case "unsubscribe":
		for _, v := range msg.Views {
			delete(c.views, v)
		}
	}
}

// NotifyView tells subscribers of one view to refetch it.
func (h *Hub) NotifyView(view string) {
	h.broadcast(Event{Type: "view-changed", View: view, Timestamp: time.Now()}, view)
}

// NotifyClockChanged tells every connected client the demo clock moved.
// Every view re-anchors on its next render, so no topic filter applies.
func (h *Hub) NotifyClockChanged() {
	h.broadcast(Event{Type: "clock-changed", Timestamp: time.Now()}, "")
}

// broadcast serializes once and fans out. view == "" means all clients.
// A client whose buffer is full is skipped rather than blocked on.
func (h *Hub) broadcast(ev Event, view string) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.log.Error().Err(err).Msg("marshal live event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if view != "" {
			if _, ok := c.views[view]; !ok {
				continue
			}
		}
		select {
		case c.send <- data:
		default:
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS policy is enforced on the REST surface; the socket carries
		// no data, only refresh hints.
		return true
	},
}

// Handler upgrades HTTP connections and pumps events to them.
type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/ws", h.Connect)
}

func (h *Handler) Connect(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	cl := &client{
		id:    uuid.NewString(),
		views: make(map[string]struct{}),
		send:  make(chan []byte, 64),
	}
	h.hub.register(cl)

	go h.writePump(cl, ws)
	go h.readPump(cl, ws)
	return nil
}

func (h *Handler) readPump(cl *client, ws *gorillaws.Conn) {
	defer func() {
		h.hub.unregister(cl)
		ws.Close()
	}()
	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			return
		}
		var msg subscribeMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		h.hub.process(cl, msg)
	}
}

func (h *Handler) writePump(cl *client, ws *gorillaws.Conn) {
	defer ws.Close()
	for data := range cl.send {
		if err := ws.WriteMessage(gorillaws.TextMessage, data); err != nil {
			return
		}
	}
}
