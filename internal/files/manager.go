package files

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"storepulse/internal/config"
)

// Manager provides file management operations
type Manager struct {
	paths     config.PathsConfig
	discovery *Discovery
	logger    *slog.Logger
}

// NewManager creates a new file manager instance
func NewManager(paths config.PathsConfig, logger *slog.Logger) *Manager {
	return &Manager{
		paths:     paths,
		discovery: NewDiscovery(paths.DataDir),
		logger:    logger,
	}
}

// ResolveDataset returns the workbook the dashboard should load.
//
// configured comes from Config.DatasetPath and wins whenever it exists. With
// discover set, a missing file falls back to the newest workbook in the data
// directory. Otherwise configured is returned unchanged so the load error
// names the file the operator asked for.
func (m *Manager) ResolveDataset(configured string, discover bool) string {
	err := ValidateWorkbook(configured)
	if err == nil || !discover || !errors.Is(err, os.ErrNotExist) {
		return configured
	}

	found, derr := m.discovery.FindWorkbooks(m.paths.DataDir)
	if derr != nil {
		m.logger.Warn("Workbook discovery failed",
			slog.String("dir", m.paths.DataDir),
			slog.String("error", derr.Error()))
		return configured
	}

	latest, ok := GetLatestFile(found)
	if !ok {
		m.logger.Warn("No workbook found in data directory",
			slog.String("dir", m.paths.DataDir),
			slog.String("configured", configured))
		return configured
	}

	m.logger.Info("Configured dataset missing, using latest workbook",
		slog.String("configured", configured),
		slog.String("path", latest.Path),
		slog.Time("mod_time", latest.ModTime))
	return latest.Path
}

// EnsureDirectories creates the export and log directories
func (m *Manager) EnsureDirectories() error {
	for _, dir := range []string{m.paths.ExportsDir, m.paths.LogsDir} {
		if dir == "" {
			continue
		}
		if err := m.EnsureDirectory(dir); err != nil {
			return err
		}
	}
	return nil
}

// EnsureDirectory creates a directory if it doesn't exist
func (m *Manager) EnsureDirectory(path string) error {
	m.logger.Debug("Ensuring directory exists", slog.String("path", path))

	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}
