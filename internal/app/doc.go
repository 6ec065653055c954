// Package app wires the store dashboard together: configuration, logging,
// OpenTelemetry, the dataset cache, services, the chi router and the HTTP
// server with graceful shutdown.
//
// # Initialization Flow
//
//	1. Load configuration (defaults, YAML, PULSE_* environment)
//	2. Initialize logging and observability
//	3. Create the dataset cache, dashboard service and health service
//	4. Start the WebSocket hub
//	5. Build the router and HTTP server
//
// # Usage
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    return err
//	}
//	return application.Run()
//
// # Graceful Shutdown
//
// Run waits for SIGINT or SIGTERM, then lets in-flight requests finish,
// closes WebSocket clients and flushes OpenTelemetry providers. The package
// never calls os.Exit.
package app
