package http

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"storepulse/pkg/contracts"
	api "storepulse/pkg/contracts/api/v1"
	"storepulse/pkg/contracts/domain"
)

// MockDashboardService is a mock implementation of DashboardServiceInterface
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Options(ctx context.Context) (api.OptionsResponse, error) {
	args := m.Called()
	return args.Get(0).(api.OptionsResponse), args.Error(1)
}

func (m *MockDashboardService) View(ctx context.Context, source string, req api.ViewRequest) (domain.DashboardView, error) {
	args := m.Called(source, req)
	return args.Get(0).(domain.DashboardView), args.Error(1)
}

func (m *MockDashboardService) Export(ctx context.Context, source string, req api.ViewRequest, w io.Writer) (int, error) {
	args := m.Called(source, req)
	if content, ok := args.Get(0).(string); ok && content != "" {
		_, _ = io.WriteString(w, content)
	}
	return args.Int(1), args.Error(2)
}

func (m *MockDashboardService) GeoJSON(ctx context.Context, source string, req api.ViewRequest) ([]byte, error) {
	args := m.Called(source, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockHealthService is a mock implementation of HealthServiceInterface
type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) HealthCheck(ctx context.Context) api.HealthResponse {
	return m.Called().Get(0).(api.HealthResponse)
}

func (m *MockHealthService) ReadinessCheck(ctx context.Context) api.HealthResponse {
	return m.Called().Get(0).(api.HealthResponse)
}

func (m *MockHealthService) LivenessCheck(ctx context.Context) api.HealthResponse {
	return m.Called().Get(0).(api.HealthResponse)
}

func (m *MockHealthService) Version() contracts.VersionInfo {
	return m.Called().Get(0).(contracts.VersionInfo)
}
