// Package services implements the business logic layer of the dashboard.
// It sits between the transports (HTTP handlers, WebSocket clients, the CLI)
// and the data pipeline.
//
// # Services
//
//	- DashboardService: loads the cached workbook, resolves filter requests
//	  against the default selection, runs the filter and segment pipeline and
//	  builds views, CSV exports and GeoJSON
//	- HealthService: liveness, readiness (dataset loaded) and version
//
// # Error Handling
//
// Services wrap failures in sentinel errors that handlers translate:
//
//	- ErrDatasetUnavailable when the workbook cannot be read or parsed
//	- ErrInvalidFilter when a filter state fails validation
//	- ErrExportFailed when writing the CSV fails
//
// The underlying cause stays in the chain, so errors.As still finds the
// typed errors from the errors package.
//
// # Testing
//
// Dependencies are small interfaces (DatasetLoader, StructValidator,
// DatasetInspector) so tests can substitute stubs or testify mocks.
package services
