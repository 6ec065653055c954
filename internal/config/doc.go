// Package config provides centralized configuration management for Store Pulse.
//
// # Configuration Sources
//
// Configuration is layered, later sources winning:
//
//	1. Default values (Default)
//	2. An optional YAML file (config.yaml, configs/config.yaml or PULSE_CONFIG_FILE)
//	3. Environment variables
//
// # Environment Variables
//
// All environment variables follow the pattern PULSE_<SECTION>_<FIELD>:
//
//	PULSE_SERVER_PORT=8080
//	PULSE_DATASET_PATH=dashboard_ready_scaled.xlsx
//	PULSE_DATASET_SHEET=Sheet1
//	PULSE_DATASET_DISCOVER=true
//	PULSE_LOGGING_LEVEL=debug
//	PULSE_SECURITY_RATE_LIMIT_ENABLED=false
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	path := cfg.DatasetPath()
package config
