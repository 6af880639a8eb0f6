// Package config provides application configuration management from environment variables.
//
// # Overview
//
// This package loads and validates configuration from environment variables with
// sensible defaults for all settings.
//
// # Configuration Structure
//
// Server settings:
//
//	ORGMASTER_HOST="0.0.0.0"
//	ORGMASTER_PORT="8080"
//	ORGMASTER_OPS_PORT="9090"
//	ORGMASTER_READ_TIMEOUT="15s"
//	ORGMASTER_WRITE_TIMEOUT="15s"
//
// Storage settings:
//
//	ORGMASTER_STORAGE_TYPE="postgres"  # memory, postgres
//	ORGMASTER_POSTGRES_URL="postgres://localhost/orgmaster"
//	ORGMASTER_POSTGRES_MAX_CONNS="20"
//
// Cache settings:
//
//	ORGMASTER_CACHE_ENABLED="true"
//	ORGMASTER_REDIS_URL="redis://localhost:6379"
//	ORGMASTER_CACHE_TTL="5m"
//
// Auth settings:
//
//	ORGMASTER_JWT_SECRET="change-me"
//	ORGMASTER_TOKEN_TTL="168h"
//
// Observability settings:
//
//	ORGMASTER_LOG_LEVEL="info"  # debug, info, warn, error
//	ORGMASTER_METRICS_ENABLED="true"
//	ORGMASTER_OTEL_ENABLED="true"
//	ORGMASTER_OTEL_ENDPOINT="otel-collector:4317"
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
//	fmt.Printf("Storage: %s\n", cfg.Storage.Type)
//
// # Related Packages
//
//   - pkg/storage: Uses storage configuration
//   - pkg/observability: Uses observability configuration
package config
