package main

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"
)

type ghostCell struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Player int `json:"player"`
}

// ghostPayload carries the move the engine would play for a human side
// to move. Active is false when there is nothing to suggest.
type ghostPayload struct {
	Best       *ghostCell `json:"best,omitempty"`
	Score      int        `json:"score,omitempty"`
	NextPlayer int        `json:"next_player,omitempty"`
	HistoryLen int        `json:"history_len"`
	Active     bool       `json:"active"`
}

type GhostClient struct {
	hub  *GhostHub
	send chan []byte
}

type GhostHub struct {
	mu        sync.Mutex
	clients   map[*GhostClient]struct{}
	broadcast chan ghostPayload
}

func NewGhostHub() *GhostHub {
	return &GhostHub{
		clients:   make(map[*GhostClient]struct{}),
		broadcast: make(chan ghostPayload, 32),
	}
}

func (h *GhostHub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				client.sendJSON(wsMessage{Type: "ghost", Payload: mustMarshal(payload)})
			}
			h.mu.Unlock()
		}
	}
}

// Register adds a client and sends it the current suggestion.
func (h *GhostHub) Register(c *GhostClient, current ghostPayload) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	c.sendJSON(wsMessage{Type: "ghost", Payload: mustMarshal(current)})
	h.mu.Unlock()
}

func (h *GhostHub) Publish(payload ghostPayload) {
	select {
	case h.broadcast <- payload:
	default:
	}
}

func (h *GhostHub) Unregister(c *GhostClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *GhostHub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

func (c *GhostClient) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func serveGhostWS(hub *GhostHub, controller *GameController, w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Debug("ghost websocket upgrade failed")
		return
	}
	client := &GhostClient{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client, controller.GhostPayload())

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			logrus.WithError(err).Debug("ghost websocket writer stopped")
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			hub.Unregister(client)
			return
		}
	}
}
