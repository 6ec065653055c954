package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// ValidationError represents validation errors
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Predefined error types for common scenarios
var (
	// 429 Too Many Requests
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded")
)

// InvalidRequestWithError creates an invalid request error with details
func InvalidRequestWithError(err error) *APIError {
	return NewWithDetails(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format", err.Error())
}

// ErrValidation creates a validation error with field details
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", ValidationError{
		Field:   field,
		Message: message,
	})
}

// InvalidParameterError reports a query parameter that could not be parsed
func InvalidParameterError(name, value string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "INVALID_PARAMETER",
		fmt.Sprintf("Invalid value for %s", name),
		ValidationError{Field: name, Message: fmt.Sprintf("cannot parse %q", value)})
}

// DatasetUnavailableError wraps a load failure as a 503
func DatasetUnavailableError(err error) *APIError {
	return NewWithDetails(http.StatusServiceUnavailable, "DATASET_UNAVAILABLE", "Store dataset could not be loaded", err.Error())
}

// ExportError creates an export failure error
func ExportError(err error) *APIError {
	return NewWithDetails(http.StatusInternalServerError, "EXPORT_FAILED", "CSV export failed", err.Error())
}

// ValidationErrors represents multiple validation errors
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// NewValidationErrors creates validation errors from multiple fields
func NewValidationErrors(errors []ValidationError) *APIError {
	return NewWithDetails(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Request validation failed",
		ValidationErrors{Errors: errors},
	)
}

// PanicRecovery represents panic recovery information
type PanicRecovery struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// ErrPanic creates a panic recovery error. The recovered value is only
// attached as details when withDetails is set.
func ErrPanic(rec interface{}, withDetails bool) *APIError {
	err := New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred")
	if withDetails {
		err.Details = PanicRecovery{
			Message: fmt.Sprintf("%v", rec),
			Stack:   getStackTrace(),
		}
	}
	return err
}

// NewValidationError creates a simple validation error
func NewValidationError(message string) *APIError {
	return New(http.StatusBadRequest, "VALIDATION_FAILED", message)
}

// PayloadTooLargeError reports a request body over limit bytes. size is 0
// when the body length was not announced up front.
func PayloadTooLargeError(limit, size int64) *APIError {
	details := map[string]interface{}{"max_size": limit}
	if size > 0 {
		details["size"] = size
	}
	return NewWithDetails(http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE",
		"Request body exceeds maximum allowed size", details)
}

// WebSocketUpgradeError reports a handshake the upgrader rejected with status
func WebSocketUpgradeError(status int, reason error) *APIError {
	return NewWithDetails(status, "WEBSOCKET_UPGRADE_FAILED", "WebSocket upgrade failed", reason.Error())
}
