// Package config provides application configuration management from environment variables.
//
// # Configuration Structure
//
// Server settings:
//
//	ATLAS_ENVIRONMENT="development"  # development, production
//	ATLAS_HOST="0.0.0.0"
//	ATLAS_PORT="8080"
//	ATLAS_READ_TIMEOUT="15s"
//	ATLAS_WRITE_TIMEOUT="15s"
//	ATLAS_CORS_ORIGINS="https://studyatlas.example"
//
// Storage settings:
//
//	ATLAS_POSTGRES_URL="postgres://localhost/atlas"
//	ATLAS_POSTGRES_MAX_CONNS="20"
//	ATLAS_POSTGRES_TIMEOUT="3s"
//
// Cache settings:
//
//	ATLAS_CACHE_ENABLED="true"
//	ATLAS_REDIS_URL="redis://localhost:6379"
//	ATLAS_L1_CACHE_SIZE="1024"
//
// Auth settings:
//
//	ATLAS_USER_JWT_SECRET="..."
//	ATLAS_ADMIN_JWT_SECRET="..."
//	ATLAS_TOKEN_TTL="24h"
//	ATLAS_GOOGLE_CLIENT_ID="...apps.googleusercontent.com"
//
// Observability settings:
//
//	ATLAS_LOG_LEVEL="info"  # debug, info, warn, error
//	ATLAS_METRICS_ENABLED="true"
//
// # Usage Example
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Related Packages
//
//   - pkg/storage: Uses storage configuration
//   - pkg/observability: Uses observability configuration
package config
