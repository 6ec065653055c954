// Package http implements the HTTP handlers of the store dashboard.
// Handlers stay thin: they parse filters from the query string or a JSON
// body, call the dashboard service and render JSON, CSV or GeoJSON.
//
// # Endpoints
//
//	GET  /                              dashboard page
//	GET  /api/dashboard/options         filter choices and defaults
//	GET  /api/dashboard/view            dashboard for query filters
//	POST /api/dashboard/view            dashboard for a JSON filter body
//	GET  /api/dashboard/export.csv      segmented table as CSV
//	GET  /api/dashboard/map.geojson     filtered stores as GeoJSON
//	POST /api/client-log                browser-side error reports
//	GET  /api/health[/ready|/live]      health checks
//	GET  /api/version                   build information
//
// # Filters
//
// Query filters use cluster, income_group, gap_min and gap_max. An absent
// parameter keeps the default (everything selected); a present but empty
// parameter selects nothing:
//
//	/api/dashboard/view?cluster=0&cluster=2&gap_min=-20
//	/api/dashboard/export.csv?income_group=
//
// # Error Handling
//
// All errors follow RFC 7807 Problem Details. A dataset that cannot be
// loaded answers 503 so the page can tell an outage from a bad filter (400).
package http
