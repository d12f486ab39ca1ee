package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"

	"github.com/idilsaglam/tada/internal/model"
)

const EventChanged = "changed"

// Event is pushed to every subscriber of /_events after the collection
// changes.
type Event struct {
	Type string   `json:"type"`
	Op   string   `json:"op,omitempty"`
	ID   model.ID `json:"id,omitempty"`
}

// Hub fans collection events out to websocket subscribers.
type Hub struct {
	clients   map[*websocket.Conn]bool
	clientsMu sync.RWMutex

	broadcast chan Event
	done      chan struct{}
	closeOnce sync.Once
	logger    *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Event, 100),
		done:      make(chan struct{}),
		logger:    logger,
	}
}

// Publish queues ev for delivery. Events are dropped when the queue is full.
func (h *Hub) Publish(ev Event) {
	select {
	case h.broadcast <- ev:
	default:
		h.logger.Warn("event queue full, dropping", "op", ev.Op, "id", ev.ID)
	}
}

// Clients is the number of connected subscribers.
func (h *Hub) Clients() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// Run delivers queued events until ctx is done, then disconnects everyone.
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-h.broadcast:
			data, err := json.Marshal(ev)
			if err != nil {
				h.logger.Error("marshal event", "err", err)
				continue
			}
			h.clientsMu.RLock()
			clients := make([]*websocket.Conn, 0, len(h.clients))
			for conn := range h.clients {
				clients = append(clients, conn)
			}
			h.clientsMu.RUnlock()

			for _, conn := range clients {
				wctx, cancel := context.WithTimeout(ctx, 5*time.Second)
				err := conn.Write(wctx, websocket.MessageText, data)
				cancel()
				if err != nil {
					h.logger.Debug("send failed", "err", err)
					h.remove(conn)
				}
			}
		}
	}
}

// ServeHTTP upgrades to a websocket and holds the subscription open until
// the peer leaves or the hub stops. Incoming frames are ignored.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	h.clientsMu.Lock()
	h.clients[conn] = true
	n := len(h.clients)
	h.clientsMu.Unlock()
	h.logger.Debug("subscriber connected", "total", n)

	hello, _ := json.Marshal(Event{Type: "hello"})
	wctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	_ = conn.Write(wctx, websocket.MessageText, hello)
	cancel()

	readCtx := conn.CloseRead(context.Background())
	select {
	case <-readCtx.Done():
	case <-h.done:
	}
	h.remove(conn)
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.clientsMu.Lock()
	if !h.clients[conn] {
		h.clientsMu.Unlock()
		return
	}
	delete(h.clients, conn)
	n := len(h.clients)
	h.clientsMu.Unlock()

	_ = conn.Close(websocket.StatusNormalClosure, "")
	h.logger.Debug("subscriber disconnected", "total", n)
}

func (h *Hub) shutdown() {
	h.closeOnce.Do(func() { close(h.done) })
	h.clientsMu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
		delete(h.clients, conn)
	}
	h.clientsMu.Unlock()

	for _, conn := range conns {
		_ = conn.Close(websocket.StatusGoingAway, "server shutting down")
	}
}
