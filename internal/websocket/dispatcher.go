package websocket

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	apierrors "storepulse/internal/errors"
	"storepulse/internal/services"
	api "storepulse/pkg/contracts/api/v1"
	"storepulse/pkg/contracts/domain"
	"storepulse/pkg/contracts/events"
)

// Error codes sent in error messages
const (
	CodeInvalidMessage     = "INVALID_MESSAGE"
	CodeUnknownType        = "UNKNOWN_TYPE"
	CodeInvalidFilter      = "INVALID_FILTER"
	CodeDatasetUnavailable = "DATASET_UNAVAILABLE"
	CodeTimeout            = "TIMEOUT"
	CodeInternal           = "INTERNAL_ERROR"
)

const (
	sourceWebSocket = "websocket"
	typeHeartbeat   = "heartbeat"
)

// FilterService runs the dashboard pipeline for the channel
type FilterService interface {
	Dataset(ctx context.Context) (*domain.Dataset, domain.FilterOptions, error)
	View(ctx context.Context, source string, req api.ViewRequest) (domain.DashboardView, error)
}

// StructValidator validates decoded filter requests
type StructValidator interface {
	ValidateStruct(v interface{}) error
}

// Dispatcher turns client messages into replies
type Dispatcher struct {
	service   FilterService
	validator StructValidator
	logger    *slog.Logger
}

// NewDispatcher creates a dispatcher. validator may be nil.
func NewDispatcher(service FilterService, validator StructValidator, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		service:   service,
		validator: validator,
		logger:    logger.With(slog.String("component", "websocket.dispatcher")),
	}
}

// Greeting describes the loaded dataset to a newly connected client
func (d *Dispatcher) Greeting(ctx context.Context) events.WebSocketMessage {
	ds, opts, err := d.service.Dataset(ctx)
	if err != nil {
		return d.errorReply(ctx, "", err)
	}
	return events.NewMessage("", events.MessageTypeDataset, events.DatasetData{
		Source:      ds.Source,
		Rows:        ds.Len(),
		DroppedRows: ds.DroppedRows,
		LoadedAt:    ds.LoadedAt,
		Options:     opts,
	})
}

// Handle answers one raw client message. The second result is false when
// the message needs no reply.
func (d *Dispatcher) Handle(ctx context.Context, raw []byte) (events.WebSocketMessage, bool) {
	var msg events.ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return events.NewErrorMessage("", CodeInvalidMessage, "message is not valid JSON", false), true
	}

	switch msg.Type {
	case events.MessageTypeFilter:
		return d.handleFilter(ctx, msg), true
	case events.MessageTypePing:
		return events.NewMessage(msg.ID, events.MessageTypePong, nil), true
	case typeHeartbeat:
		return events.WebSocketMessage{}, false
	default:
		return events.NewErrorMessage(msg.ID, CodeUnknownType, "unknown message type "+string(msg.Type), false), true
	}
}

func (d *Dispatcher) handleFilter(ctx context.Context, msg events.ClientMessage) events.WebSocketMessage {
	var req api.ViewRequest
	if filters := bytes.TrimSpace(msg.Filters); len(filters) > 0 && !bytes.Equal(filters, []byte("null")) {
		if err := json.Unmarshal(filters, &req); err != nil {
			return events.NewErrorMessage(msg.ID, CodeInvalidFilter, "filters could not be decoded", false)
		}
	}
	if d.validator != nil {
		if err := d.validator.ValidateStruct(req); err != nil {
			return events.NewErrorMessage(msg.ID, CodeInvalidFilter, validationMessage(err), false)
		}
	}

	start := time.Now()
	view, err := d.service.View(ctx, sourceWebSocket, req)
	if err != nil {
		return d.errorReply(ctx, msg.ID, err)
	}

	d.logger.DebugContext(ctx, "Filter message handled",
		slog.String("message_id", msg.ID),
		slog.Int("rows", view.Summary.RowCount),
		slog.Duration("duration", time.Since(start)))
	return events.NewMessage(msg.ID, events.MessageTypeView, view)
}

func (d *Dispatcher) errorReply(ctx context.Context, id string, err error) events.WebSocketMessage {
	var (
		code    = CodeInternal
		message = "the view could not be computed"
		retry   bool
	)

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		code, message, retry = CodeTimeout, "the request took too long", true
	case errors.Is(err, services.ErrInvalidFilter):
		code, message = CodeInvalidFilter, validationMessage(err)
	case errors.Is(err, services.ErrDatasetUnavailable):
		code, message, retry = CodeDatasetUnavailable, "store dataset could not be loaded", true
	}

	level := slog.LevelWarn
	if code == CodeInternal {
		level = slog.LevelError
	}
	d.logger.Log(ctx, level, "Filter message failed",
		slog.String("message_id", id),
		slog.String("code", code),
		slog.String("error", err.Error()))

	return events.NewErrorMessage(id, code, message, retry)
}

// validationMessage lists field problems from a validation APIError
func validationMessage(err error) string {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		if details, ok := apiErr.Details.(apierrors.ValidationErrors); ok && len(details.Errors) > 0 {
			parts := make([]string, 0, len(details.Errors))
			for _, fe := range details.Errors {
				parts = append(parts, fe.Message)
			}
			return strings.Join(parts, "; ")
		}
		return apiErr.Message
	}
	return err.Error()
}
