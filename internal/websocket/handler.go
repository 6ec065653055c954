package websocket

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	apierrors "storepulse/internal/errors"
	"storepulse/internal/infrastructure"
)

// HandlerConfig configures the upgrade endpoint
type HandlerConfig struct {
	ReadBufferSize  int
	WriteBufferSize int
	// AllowedOrigins lists browser origins allowed to connect. Empty or "*"
	// allows all; same-host requests are always allowed.
	AllowedOrigins []string
	Client         ClientSettings
}

// Handler upgrades GET /ws requests and starts a client per connection
type Handler struct {
	hub          *Hub
	dispatcher   *Dispatcher
	cfg          HandlerConfig
	upgrader     websocket.Upgrader
	errorHandler *apierrors.ErrorHandler
	logger       *slog.Logger
}

// NewHandler creates the WebSocket endpoint
func NewHandler(hub *Hub, dispatcher *Dispatcher, cfg HandlerConfig, errorHandler *apierrors.ErrorHandler, logger *slog.Logger) *Handler {
	h := &Handler{
		hub:          hub,
		dispatcher:   dispatcher,
		cfg:          cfg,
		errorHandler: errorHandler,
		logger:       logger.With(slog.String("component", "websocket.handler")),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		CheckOrigin:     h.checkOrigin,
		Error:           h.upgradeError,
	}
	return h
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := infrastructure.EnsureTraceID(r.Context())
	traceID := infrastructure.GetTraceID(ctx)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgradeError has already answered the request
		h.logger.WarnContext(ctx, "WebSocket upgrade failed",
			slog.String("remote_addr", r.RemoteAddr),
			slog.String("error", err.Error()))
		return
	}

	client := NewClient(h.hub, conn, h.dispatcher, h.cfg.Client, traceID, h.logger)
	h.hub.Register(client)

	go client.WritePump()
	client.Send(h.dispatcher.Greeting(ctx))
	go client.ReadPump()
}

func (h *Handler) upgradeError(w http.ResponseWriter, r *http.Request, status int, reason error) {
	h.errorHandler.HandleError(w, r, apierrors.WebSocketUpgradeError(status, reason))
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	if len(h.cfg.AllowedOrigins) == 0 {
		return true
	}
	for _, allowed := range h.cfg.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}
