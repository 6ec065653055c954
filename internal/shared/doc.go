// Package shared holds helpers used across Store Pulse packages that belong
// to no single layer.
//
// The testutil subpackage provides:
//
//   - a buffered slog handler with assertions on captured records
//   - xlsx workbook builders producing store spreadsheets in t.TempDir()
package shared
