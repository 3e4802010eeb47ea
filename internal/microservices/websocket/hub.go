package websocket

// Central hub managing all connections.
// Each WebSocket connection runs in its own goroutines
// but they all communicate through channels to avoid race conditions.

import (
	"context"
	"log/slog"
	"sync/atomic"

	"bookplanner/internal/metrics"
)

type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	count      atomic.Int64
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run owns the client set until ctx is done, then disconnects everyone.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.remove(client)
			}
			h.logger.Debug("ws hub stopped, all clients disconnected")
			return
		case client := <-h.register:
			h.clients[client] = true
			h.setCount()
			h.logger.Debug("ws client connected", slog.String("client_id", client.ID), slog.Int("total", len(h.clients)))
		case client := <-h.unregister:
			if h.clients[client] {
				h.remove(client)
				h.logger.Debug("ws client disconnected", slog.String("client_id", client.ID), slog.Int("total", len(h.clients)))
			}
		case msg := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.SendChannel <- msg:
				default:
					// slow consumer
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	delete(h.clients, client)
	close(client.SendChannel)
	h.setCount()
}

func (h *Hub) setCount() {
	h.count.Store(int64(len(h.clients)))
	metrics.WSClientsConnected.Set(float64(len(h.clients)))
}

// Register adds a client; it reports false once the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// leave unregisters a client; it is a no-op once the hub has stopped.
func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast sends a typed JSON message to every connected client. It
// never blocks; when the queue is full the message is dropped.
func (h *Hub) Broadcast(msgType string, data any) {
	if h.ClientCount() == 0 {
		return
	}
	payload, err := NewMessage(msgType, data).ToJSON()
	if err != nil {
		h.logger.Error("ws marshal failed", slog.Any("error", err))
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn("ws broadcast queue full, message dropped", slog.String("type", msgType))
	}
}

func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}
