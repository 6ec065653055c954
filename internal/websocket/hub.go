package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"storepulse/internal/infrastructure"
	"storepulse/pkg/contracts/events"
)

// Hub maintains the set of active clients and pushes server messages to them
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Outbound messages for every client
	broadcast chan broadcastRequest

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	logger  *slog.Logger
	metrics *infrastructure.BusinessMetrics

	totalConnections int64
	messagesSent     int64

	quit    chan struct{}
	running bool
}

// broadcastRequest carries one encoded message. delivered receives the
// number of clients it was queued for.
type broadcastRequest struct {
	data      []byte
	delivered chan int
}

// NewHub creates a new Hub. metrics may be nil.
func NewHub(logger *slog.Logger, metrics *infrastructure.BusinessMetrics) *Hub {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan broadcastRequest, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     infrastructure.WithComponent(logger, "websocket.hub"),
		metrics:    metrics,
		quit:       make(chan struct{}),
	}
}

// Start runs the hub loop in its own goroutine
func (h *Hub) Start() {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return
	}
	h.running = true
	h.mu.Unlock()

	go h.Run()
}

// Run is the hub's main loop. It returns when Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case <-h.quit:
			h.logger.Info("Hub shutting down")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.totalConnections++
			count := len(h.clients)
			h.mu.Unlock()

			ctx := client.context()
			infrastructure.RecordWebSocketConnection(ctx, h.metrics, 1)
			h.logger.InfoContext(ctx, "Client registered",
				slog.Int("total_clients", count),
				slog.String("client_id", client.id),
				slog.String("remote_addr", client.remoteAddr))

		case client := <-h.unregister:
			h.remove(client, "disconnected")

		case req := <-h.broadcast:
			message := req.data
			h.mu.RLock()
			clients := make([]*Client, 0, len(h.clients))
			for client := range h.clients {
				clients = append(clients, client)
			}
			h.mu.RUnlock()

			failCount := 0
			for _, client := range clients {
				if client.enqueue(message) {
					h.mu.Lock()
					h.messagesSent++
					h.mu.Unlock()
					continue
				}
				failCount++
				h.remove(client, "send buffer full")
			}

			h.logger.Debug("Broadcast message to clients",
				slog.Int("client_count", len(clients)),
				slog.Int("fail_count", failCount),
				slog.Int("message_size", len(message)))
			req.delivered <- len(clients) - failCount
		}
	}
}

func (h *Hub) remove(client *Client, reason string) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
	}
	count := len(h.clients)
	h.mu.Unlock()

	if !ok {
		return
	}
	client.close()

	ctx := client.context()
	infrastructure.RecordWebSocketConnection(ctx, h.metrics, -1)
	h.logger.InfoContext(ctx, "Client unregistered",
		slog.Int("total_clients", count),
		slog.String("client_id", client.id),
		slog.String("reason", reason),
		slog.Duration("connection_duration", time.Since(client.connectedAt)))
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.quit:
		client.close()
	}
}

// Unregister removes a client and closes its send queue
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.quit:
	}
}

// Broadcast sends msg to every connected client. It returns once the
// message is queued on each client, so a Stop that follows still flushes it.
func (h *Hub) Broadcast(ctx context.Context, msg events.WebSocketMessage) error {
	msg.TraceID = infrastructure.GetTraceID(ctx)
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.ErrorContext(ctx, "Error marshaling broadcast message",
			slog.String("message_type", string(msg.Type)),
			slog.String("error", err.Error()))
		return err
	}

	req := broadcastRequest{data: data, delivered: make(chan int, 1)}
	select {
	case h.broadcast <- req:
	case <-h.quit:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case n := <-req.delivered:
		h.logger.DebugContext(ctx, "Broadcast delivered",
			slog.String("message_type", string(msg.Type)),
			slog.Int("clients", n))
		return nil
	case <-h.quit:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Stats returns connection counters for logging
func (h *Hub) Stats() map[string]interface{} {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return map[string]interface{}{
		"active_clients":    len(h.clients),
		"total_connections": h.totalConnections,
		"messages_sent":     h.messagesSent,
	}
}

// Stop ends the hub loop and closes every client
func (h *Hub) Stop() {
	stats := h.Stats()

	h.mu.Lock()
	if !h.running {
		h.mu.Unlock()
		return
	}
	h.running = false
	close(h.quit)

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
		delete(h.clients, client)
	}
	h.mu.Unlock()

	for _, client := range clients {
		client.close()
		infrastructure.RecordWebSocketConnection(client.context(), h.metrics, -1)
	}
	h.logger.Info("Hub stopped",
		slog.Int("closed_clients", len(clients)),
		slog.Any("total_connections", stats["total_connections"]),
		slog.Any("messages_sent", stats["messages_sent"]))
}
