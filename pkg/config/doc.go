// Package config provides application configuration management from environment variables.
//
// # Overview
//
// This package loads and validates configuration from environment variables with
// sensible defaults for all settings except the token signing secret.
//
// # Configuration Structure
//
// Server settings:
//
//	LOCUSD_HOST="0.0.0.0"
//	LOCUSD_PORT="8080"
//	LOCUSD_HEALTH_PORT="9090"
//	LOCUSD_READ_TIMEOUT="15s"
//	LOCUSD_WRITE_TIMEOUT="15s"
//
// Database settings:
//
//	LOCUSD_POSTGRES_URL="postgres://localhost/rnacentral"
//	LOCUSD_POSTGRES_REPLICA_URLS="postgres://replica1/...,postgres://replica2/..."
//	LOCUSD_POSTGRES_MAX_CONNS="20"
//	LOCUSD_POSTGRES_TIMEOUT="10s"
//
// Auth settings:
//
//	LOCUSD_TOKEN_SECRET="..."       # required
//	LOCUSD_TOKEN_TTL="24h"
//	LOCUSD_ALLOWED_REGION_IDS="32162857"
//
// Observability settings:
//
//	LOCUSD_LOG_LEVEL="info"  # debug, info, warn, error
//	LOCUSD_METRICS_ENABLED="true"
//
// # Usage Example
//
// Load configuration:
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Printf("Server: %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//	fmt.Printf("Log level: %s\n", cfg.Observability.LogLevel)
//
// # Related Packages
//
//   - pkg/storage/postgres: Uses database configuration
//   - pkg/observability: Uses observability configuration
package config
