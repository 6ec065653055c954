package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrNotWorkbook is returned for paths that cannot hold the dataset
	ErrNotWorkbook = errors.New("not an xlsx workbook")
)

// ValidateWorkbook checks that path is a readable xlsx file.
// A missing file reports an error wrapping os.ErrNotExist.
func ValidateWorkbook(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("dataset %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory: %w", path, ErrNotWorkbook)
	}
	if !isWorkbookName(filepath.Base(path)) {
		return fmt.Errorf("%s: %w", path, ErrNotWorkbook)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("dataset %s is not readable: %w", path, err)
	}
	return file.Close()
}
