package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"storepulse/internal/infrastructure"
	"storepulse/pkg/contracts/events"
)

// ClientSettings bounds one connection
type ClientSettings struct {
	MaxMessageSize int64
	PongWait       time.Duration
	PingPeriod     time.Duration
	WriteWait      time.Duration
	HandleTimeout  time.Duration
	SendBuffer     int
}

// DefaultClientSettings returns the settings used when none are configured
func DefaultClientSettings() ClientSettings {
	return ClientSettings{
		MaxMessageSize: 4096,
		PongWait:       60 * time.Second,
		PingPeriod:     54 * time.Second,
		WriteWait:      10 * time.Second,
		HandleTimeout:  30 * time.Second,
		SendBuffer:     16,
	}
}

// Client is a middleman between one websocket connection and the hub.
// ReadPump answers filter messages in arrival order; WritePump owns all
// writes to the connection.
type Client struct {
	hub        *Hub
	conn       Connection
	dispatcher *Dispatcher
	settings   ClientSettings

	// Buffered channel of outbound messages
	send   chan []byte
	sendMu sync.Mutex
	closed bool

	id          string
	traceID     string
	remoteAddr  string
	connectedAt time.Time

	logger *slog.Logger

	messagesReceived int64
	messagesSent     int64
}

// NewClient creates a client for conn. traceID ties the connection's log
// lines to the upgrade request.
func NewClient(hub *Hub, conn Connection, dispatcher *Dispatcher, settings ClientSettings, traceID string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	if settings.SendBuffer <= 0 {
		settings.SendBuffer = DefaultClientSettings().SendBuffer
	}

	id := uuid.New().String()
	remote := ""
	if addr := conn.RemoteAddr(); addr != nil {
		remote = addr.String()
	}

	return &Client{
		hub:         hub,
		conn:        conn,
		dispatcher:  dispatcher,
		settings:    settings,
		send:        make(chan []byte, settings.SendBuffer),
		id:          id,
		traceID:     traceID,
		remoteAddr:  remote,
		connectedAt: time.Now(),
		logger: logger.With(
			slog.String("component", "websocket.client"),
			slog.String("client_id", id),
		),
	}
}

// ID returns the client identifier
func (c *Client) ID() string {
	return c.id
}

func (c *Client) context() context.Context {
	ctx := context.Background()
	if c.traceID != "" {
		ctx = infrastructure.WithTraceID(ctx, c.traceID)
	}
	return ctx
}

// enqueue queues data without blocking. It reports false when the client is
// closed or its buffer is full.
func (c *Client) enqueue(data []byte) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// Send marshals msg and queues it for this client only
func (c *Client) Send(msg events.WebSocketMessage) bool {
	if msg.TraceID == "" {
		msg.TraceID = c.traceID
	}
	data, err := json.Marshal(msg)
	if err != nil {
		c.logger.ErrorContext(c.context(), "Error marshaling message",
			slog.String("message_type", string(msg.Type)),
			slog.String("error", err.Error()))
		return false
	}
	if !c.enqueue(data) {
		c.logger.WarnContext(c.context(), "Dropped message for client",
			slog.String("message_type", string(msg.Type)))
		return false
	}
	return true
}

// ReadPump reads client messages until the connection fails and replies to
// each one through the send queue
func (c *Client) ReadPump() {
	ctx := c.context()
	defer func() {
		c.logger.InfoContext(ctx, "WebSocket client disconnected",
			slog.Duration("connection_duration", time.Since(c.connectedAt)),
			slog.Int64("messages_received", c.messagesReceived))
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(c.settings.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.settings.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.settings.PongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				c.logger.WarnContext(ctx, "Unexpected WebSocket close error",
					slog.String("error", err.Error()))
			}
			return
		}
		c.messagesReceived++

		reply, ok := c.handle(ctx, message)
		if ok {
			c.Send(reply)
		}
	}
}

func (c *Client) handle(parent context.Context, message []byte) (events.WebSocketMessage, bool) {
	ctx := parent
	if c.settings.HandleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, c.settings.HandleTimeout)
		defer cancel()
	}
	return c.dispatcher.Handle(ctx, message)
}

// WritePump writes queued messages and pings to the connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.settings.PingPeriod)
	ctx := c.context()
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
		c.logger.DebugContext(ctx, "WebSocket write pump stopped",
			slog.Int64("messages_sent", c.messagesSent))
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.settings.WriteWait))
			if !ok {
				// The hub closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.ErrorContext(ctx, "Error writing message to WebSocket",
					slog.String("error", err.Error()))
				return
			}
			c.messagesSent++

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.settings.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.DebugContext(ctx, "Failed to send ping message",
					slog.String("error", err.Error()))
				return
			}
		}
	}
}
