package services

import "errors"

// Dashboard service errors
var (
	// Dataset errors
	ErrDatasetUnavailable = errors.New("dataset unavailable")

	// Filter errors
	ErrInvalidFilter = errors.New("invalid filter")

	// Export errors
	ErrExportFailed = errors.New("export failed")
)
