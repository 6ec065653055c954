// Package events contains the WebSocket message contracts of the live dashboard.
//
// A client sends a filter message and receives the recomputed view in reply.
// Each new connection is greeted with a dataset message, and every client
// gets a shutdown message before the server closes its connection.
package events

import (
	"encoding/json"
	"time"

	"storepulse/pkg/contracts/domain"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// Client to server
	MessageTypeFilter MessageType = "filter"
	MessageTypePing   MessageType = "ping"

	// Server to client
	MessageTypeView     MessageType = "view"
	MessageTypeDataset  MessageType = "dataset"
	MessageTypePong     MessageType = "pong"
	MessageTypeShutdown MessageType = "shutdown"

	// Connection messages
	MessageTypeError MessageType = "error"
)

// BaseMessage represents the base structure for all WebSocket messages
type BaseMessage struct {
	ID        string      `json:"id,omitempty"`       // Unique message ID
	Type      MessageType `json:"type"`               // Message type
	Timestamp time.Time   `json:"timestamp"`          // Message timestamp
	TraceID   string      `json:"trace_id,omitempty"` // Request trace ID
}

// WebSocketMessage represents a complete server message
type WebSocketMessage struct {
	BaseMessage
	Data any `json:"data,omitempty"`
}

// ClientMessage is a message received from the browser.
// Filters is decoded only for filter messages.
type ClientMessage struct {
	ID      string          `json:"id,omitempty"`
	Type    MessageType     `json:"type"`
	Filters json.RawMessage `json:"filters,omitempty"`
}

// ErrorData is the payload of an error message
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

// DatasetData describes the loaded dataset
type DatasetData struct {
	Source      string               `json:"source"`
	Rows        int                  `json:"rows"`
	DroppedRows int                  `json:"dropped_rows"`
	LoadedAt    time.Time            `json:"loaded_at"`
	Options     domain.FilterOptions `json:"options"`
}

// ShutdownData is the payload of a shutdown message
type ShutdownData struct {
	Reason string `json:"reason"`
}

// NewMessage builds a server message stamped with the current time
func NewMessage(id string, msgType MessageType, data any) WebSocketMessage {
	return WebSocketMessage{
		BaseMessage: BaseMessage{
			ID:        id,
			Type:      msgType,
			Timestamp: time.Now(),
		},
		Data: data,
	}
}

// NewErrorMessage builds an error reply
func NewErrorMessage(id, code, message string, retry bool) WebSocketMessage {
	return NewMessage(id, MessageTypeError, ErrorData{Code: code, Message: message, Retry: retry})
}
