package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"storepulse/internal/shared/testutil"
	"storepulse/pkg/contracts"
	api "storepulse/pkg/contracts/api/v1"
)

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		call           func(h *HealthHandler) http.HandlerFunc
		response       interface{}
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "health",
			method:         "HealthCheck",
			call:           func(h *HealthHandler) http.HandlerFunc { return h.HealthCheck },
			response:       api.HealthResponse{Status: "ok"},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"ok"`,
		},
		{
			name:           "ready",
			method:         "ReadinessCheck",
			call:           func(h *HealthHandler) http.HandlerFunc { return h.ReadinessCheck },
			response:       api.HealthResponse{Status: "ready"},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"ready"`,
		},
		{
			name:           "not ready",
			method:         "ReadinessCheck",
			call:           func(h *HealthHandler) http.HandlerFunc { return h.ReadinessCheck },
			response:       api.HealthResponse{Status: "not_ready"},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `"status":"not_ready"`,
		},
		{
			name:           "live",
			method:         "LivenessCheck",
			call:           func(h *HealthHandler) http.HandlerFunc { return h.LivenessCheck },
			response:       api.HealthResponse{Status: "alive"},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"alive"`,
		},
		{
			name:           "version",
			method:         "Version",
			call:           func(h *HealthHandler) http.HandlerFunc { return h.Version },
			response:       contracts.VersionInfo{Version: "1.2.0"},
			expectedStatus: http.StatusOK,
			expectedBody:   `"version":"1.2.0"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockHealthService)
			svc.On(tt.method).Return(tt.response)
			logger, _ := testutil.NewTestLogger(t)
			h := NewHealthHandler(svc, logger)

			rec := httptest.NewRecorder()
			tt.call(h)(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
