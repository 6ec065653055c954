package config

import "time"

// Application constants
const (
	// Application Info
	AppName  = "Store Pulse"
	AppTitle = "Boston Grocery Store Mobility Dashboard"

	// Input data
	DefaultDatasetFile = "dashboard_ready_scaled.xlsx"

	// Server
	DefaultPort = 8080

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// WebSocket
	WebSocketReadBufferSize  = 1024
	WebSocketWriteBufferSize = 1024
	WebSocketMaxMessageSize  = 4096 // filter payloads only
	WebSocketPingPeriod      = 30 * time.Second
	WebSocketPongWait        = 60 * time.Second

	// File Paths
	DefaultExportsDir = "exports"
	DefaultLogsDir    = "logs"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// Endpoints
	APIBasePath       = "/api"
	MetricsEndpoint   = "/metrics"
	WebSocketEndpoint = "/ws"
)
