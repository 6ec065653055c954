package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storepulse/internal/shared/testutil"
)

func TestNewErrorHandler(t *testing.T) {
	tests := []struct {
		name         string
		includeStack bool
	}{
		{name: "create handler with stack traces", includeStack: true},
		{name: "create handler without stack traces", includeStack: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)

			handler := NewErrorHandler(logger, tt.includeStack)

			assert.NotNil(t, handler)
			assert.Equal(t, tt.includeStack, handler.includeStack)
			assert.NotNil(t, handler.logger)
		})
	}
}

func TestErrorHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
		wantTitle  string
	}{
		{
			name:       "handle nil error",
			err:        nil,
			wantStatus: 0,
		},
		{
			name:       "handle context deadline exceeded",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
			wantTitle:  "Request Timeout",
		},
		{
			name:       "handle wrapped context canceled",
			err:        fmt.Errorf("pipeline: %w", context.Canceled),
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
			wantTitle:  "Request Timeout",
		},
		{
			name:       "handle APIError",
			err:        InvalidRequestWithError(fmt.Errorf("unexpected EOF")),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
			wantTitle:  "Bad Request",
		},
		{
			name:       "handle dataset unavailable",
			err:        DatasetUnavailableError(fmt.Errorf("open dashboard_ready_scaled.xlsx: no such file")),
			wantStatus: http.StatusServiceUnavailable,
			wantType:   TypeDatasetUnavailable,
			wantTitle:  "Service Unavailable",
		},
		{
			name:       "handle wrapped parsing AppError",
			err:        fmt.Errorf("load: %w", NewParsingError("missing required column", nil)),
			wantStatus: http.StatusServiceUnavailable,
			wantType:   TypeDatasetInvalid,
			wantTitle:  "Service Unavailable",
		},
		{
			name:       "handle generic error",
			err:        fmt.Errorf("something went wrong"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
			wantTitle:  "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logHandler := testutil.NewTestLogger(t)
			handler := NewErrorHandler(logger, true)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/dashboard/view", nil)
			r = r.WithContext(context.WithValue(r.Context(), middleware.RequestIDKey, "test-request-id"))

			handler.HandleError(w, r, tt.err)

			if tt.err == nil {
				assert.Equal(t, 0, logHandler.Count())
				assert.Empty(t, w.Body.String())
				return
			}

			assert.Equal(t, tt.wantStatus, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))

			assert.Equal(t, tt.wantType, body["type"])
			assert.Equal(t, tt.wantTitle, body["title"])
			assert.Equal(t, float64(tt.wantStatus), body["status"])
			assert.Equal(t, "/api/dashboard/view", body["instance"])
			assert.Equal(t, "test-request-id", body["trace_id"])
			assert.NotEmpty(t, body["stack"])

			assert.True(t, logHandler.ContainsMessage("request failed"))
		})
	}
}

func TestErrorHandler_ErrorToProblem(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
		wantCode   interface{}
	}{
		{
			name:       "APIError validation failed",
			err:        ErrValidation("gap_range", "hi must be >= lo"),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "APIError invalid parameter",
			err:        InvalidParameterError("gap_min", "abc"),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
			wantCode:   "INVALID_PARAMETER",
		},
		{
			name:       "APIError invalid JSON",
			err:        New(http.StatusBadRequest, "INVALID_JSON", "Request body contains invalid JSON"),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
			wantCode:   "INVALID_JSON",
		},
		{
			name:       "APIError payload too large",
			err:        PayloadTooLargeError(1024, 2048),
			wantStatus: http.StatusRequestEntityTooLarge,
			wantType:   TypePayloadTooLarge,
			wantCode:   "PAYLOAD_TOO_LARGE",
		},
		{
			name:       "APIError websocket upgrade",
			err:        WebSocketUpgradeError(http.StatusBadRequest, fmt.Errorf("missing upgrade header")),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeWebSocketUpgrade,
			wantCode:   "WEBSOCKET_UPGRADE_FAILED",
		},
		{
			name:       "APIError panic",
			err:        ErrPanic("boom", false),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
		{
			name:       "APIError export failed",
			err:        ExportError(fmt.Errorf("disk full")),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeExportFailed,
			wantCode:   "EXPORT_FAILED",
		},
		{
			name:       "APIError rate limit",
			err:        ErrRateLimitExceeded,
			wantStatus: http.StatusTooManyRequests,
			wantType:   TypeRateLimit,
			wantCode:   "RATE_LIMIT_EXCEEDED",
		},
		{
			name:       "AppError storage",
			err:        NewStorageError("open workbook", fmt.Errorf("permission denied")),
			wantStatus: http.StatusServiceUnavailable,
			wantType:   TypeDatasetUnavailable,
		},
		{
			name:       "AppError parsing",
			err:        NewParsingError("missing required column", nil),
			wantStatus: http.StatusServiceUnavailable,
			wantType:   TypeDatasetInvalid,
		},
		{
			name:       "AppError unknown type hides detail",
			err:        NewAppError("CONFIG", "bad port", nil),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
	}

	logger, _ := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/test", nil)

			problem := handler.ErrorToProblem(tt.err, r)

			assert.Equal(t, tt.wantStatus, problem.Status)
			assert.Equal(t, tt.wantType, problem.Type)
			if tt.wantCode != nil {
				assert.Equal(t, tt.wantCode, problem.Extensions["error_code"])
			}
		})
	}
}

func TestErrorHandler_AppErrorContextHiddenOnInternalErrors(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false)
	r := httptest.NewRequest(http.MethodGet, "/test", nil)

	visible := NewParsingError("missing required column", nil).WithContext("column", "visit_count")
	problem := handler.ErrorToProblem(visible, r)
	assert.Equal(t, map[string]interface{}{"column": "visit_count"}, problem.Extensions["context"])

	serverErr := NewAppError("CONFIG", "bad", nil).WithContext("path", "/etc/secret")
	problem = handler.ErrorToProblem(serverErr, r)
	assert.NotContains(t, problem.Extensions, "context")
}

func TestErrorHandler_HandlePanic(t *testing.T) {
	tests := []struct {
		name         string
		includeStack bool
	}{
		{name: "without stack", includeStack: false},
		{name: "with stack", includeStack: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logHandler := testutil.NewTestLogger(t)
			handler := NewErrorHandler(logger, tt.includeStack)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/boom", nil)

			handler.HandlePanic(w, r, "nil map write")

			assert.Equal(t, http.StatusInternalServerError, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, TypeInternal, body["type"])
			assert.Equal(t, "INTERNAL_SERVER_ERROR", body["error_code"])
			assert.Equal(t, "An unexpected error occurred", body["detail"])
			assert.Contains(t, body, "trace_id")

			if tt.includeStack {
				details, ok := body["details"].(map[string]interface{})
				require.True(t, ok)
				assert.Equal(t, "nil map write", details["message"])
				assert.NotEmpty(t, details["stack"])
			} else {
				assert.NotContains(t, body, "details")
			}

			testutil.AssertLogContains(t, logHandler, slog.LevelError, "panic recovered")
		})
	}
}

func TestErrorHandler_NotFoundAndMethodNotAllowed(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false)

	w := httptest.NewRecorder()
	handler.NotFound(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), TypeNotFound)

	w = httptest.NewRecorder()
	handler.MethodNotAllowed(w, httptest.NewRequest(http.MethodDelete, "/api/dashboard/view", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), "Method DELETE is not allowed")
}
