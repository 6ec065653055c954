package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	apierrors "storepulse/internal/errors"
	"storepulse/pkg/contracts"
	api "storepulse/pkg/contracts/api/v1"
)

// DatasetInspector reports on the loaded workbook
type DatasetInspector interface {
	DatasetInfo(ctx context.Context) (*api.DatasetInfo, error)
}

// ClientCounter reports connected live-view clients
type ClientCounter interface {
	ClientCount() int
}

// HealthService provides health check functionality
type HealthService struct {
	datasetPath string
	dataset     DatasetInspector
	clients     ClientCounter
	startTime   time.Time
	logger      *slog.Logger
}

// NewHealthService creates a new health service. clients may be nil when no
// WebSocket hub is running.
func NewHealthService(datasetPath string, dataset DatasetInspector, clients ClientCounter, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized",
		slog.String("version", contracts.Version),
		slog.String("dataset", datasetPath))

	return &HealthService{
		datasetPath: datasetPath,
		dataset:     dataset,
		clients:     clients,
		startTime:   time.Now(),
		logger:      logger,
	}
}

func (hs *HealthService) uptime() string {
	return time.Since(hs.startTime).Round(time.Second).String()
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) api.HealthResponse {
	hs.logger.DebugContext(ctx, "HealthCheck: performing health check",
		slog.String("uptime", hs.uptime()))

	return api.HealthResponse{
		Status:  "ok",
		Version: contracts.GetVersionInfo(),
		Uptime:  hs.uptime(),
	}
}

// ReadinessCheck loads the dataset (through the cache) and reports whether
// the dashboard can serve views
func (hs *HealthService) ReadinessCheck(ctx context.Context) api.HealthResponse {
	status := api.HealthResponse{
		Status:  "ready",
		Version: contracts.GetVersionInfo(),
		Uptime:  hs.uptime(),
		Checks:  make(map[string]api.CheckResult),
	}

	status.Checks["dataset_file"] = hs.checkDatasetFile()

	info, err := hs.dataset.DatasetInfo(ctx)
	if err != nil {
		check := api.CheckResult{Status: "not_ready", Message: err.Error()}
		if apierrors.IsType(err, apierrors.ErrTypeParsing) {
			check.Status = "invalid"
		}
		status.Checks["dataset"] = check
	} else {
		status.Dataset = info
		status.Checks["dataset"] = api.CheckResult{
			Status:  "ready",
			Message: fmt.Sprintf("%d stores loaded", info.Rows),
		}
	}

	if hs.clients != nil {
		status.Checks["websocket"] = api.CheckResult{
			Status:  "ready",
			Message: fmt.Sprintf("%d clients connected", hs.clients.ClientCount()),
		}
	}

	for _, check := range status.Checks {
		if check.Status != "ready" {
			status.Status = "not_ready"
			break
		}
	}

	if status.Status != "ready" {
		hs.logger.WarnContext(ctx, "ReadinessCheck: not ready", slog.Any("checks", status.Checks))
	}
	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) api.HealthResponse {
	return api.HealthResponse{
		Status:  "alive",
		Version: contracts.GetVersionInfo(),
		Uptime:  hs.uptime(),
		Checks: map[string]api.CheckResult{
			"runtime": {
				Status:  "ready",
				Message: fmt.Sprintf("%d goroutines", runtime.NumGoroutine()),
			},
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() contracts.VersionInfo {
	return contracts.GetVersionInfo()
}

// checkDatasetFile checks that the workbook exists on disk
func (hs *HealthService) checkDatasetFile() api.CheckResult {
	info, err := os.Stat(hs.datasetPath)
	if err != nil {
		return api.CheckResult{
			Status:  "not_ready",
			Message: fmt.Sprintf("Dataset not accessible: %v", err),
		}
	}
	if info.IsDir() {
		return api.CheckResult{
			Status:  "not_ready",
			Message: fmt.Sprintf("Dataset path is a directory: %s", hs.datasetPath),
		}
	}
	return api.CheckResult{Status: "ready", Message: hs.datasetPath}
}
