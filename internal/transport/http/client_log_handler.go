package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	apierrors "storepulse/internal/errors"
)

const maxClientMessageLength = 1024

// ClientLogHandler records errors reported by the dashboard page, such as a
// failed map or chart render, in the server log
type ClientLogHandler struct {
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewClientLogHandler creates a new client log handler
func NewClientLogHandler(logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ClientLogHandler {
	return &ClientLogHandler{
		logger:       logger.With(slog.String("handler", "client_log")),
		errorHandler: errorHandler,
	}
}

// LogRequest represents a client log entry
type LogRequest struct {
	Level   string                 `json:"level"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Source  string                 `json:"source,omitempty"`
}

// Handle processes POST /api/client-log
func (h *ClientLogHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LogRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewValidationError("Invalid request format"))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("message", "message is required"))
		return
	}
	if len(req.Message) > maxClientMessageLength {
		req.Message = req.Message[:maxClientMessageLength]
	}

	var level slog.Level
	switch req.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	attrs := []slog.Attr{slog.String("client_source", req.Source)}
	if req.Data != nil {
		attrs = append(attrs, slog.Any("data", req.Data))
	}
	h.logger.LogAttrs(r.Context(), level, req.Message, attrs...)

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, map[string]interface{}{"success": true})
}
