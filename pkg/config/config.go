package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/studyatlas/studyatlas/pkg/observability"
	"github.com/studyatlas/studyatlas/pkg/storage"
)

// Environment names recognized by the app. Production refuses the seed
// and migration admin endpoints.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds all application configuration
type Config struct {
	// Environment is "development" or "production"
	Environment string

	// Server configuration
	Server ServerConfig

	// Storage configuration
	Storage storage.Config

	// Auth configuration
	Auth AuthConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// CORSOrigins is the comma-separated allowlist for browser clients
	CORSOrigins []string
}

// AuthConfig holds session token and Google sign-in settings. Empty
// secrets disable the corresponding surface rather than failing startup;
// a content-only deployment needs neither.
type AuthConfig struct {
	UserSecret     string
	AdminSecret    string
	TokenTTL       time.Duration
	GoogleClientID string
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel       observability.LogLevel
	MetricsEnabled bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Environment:   getEnv("ATLAS_ENVIRONMENT", EnvDevelopment),
		Server:        loadServerConfig(),
		Storage:       loadStorageConfig(),
		Auth:          loadAuthConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// IsProduction reports whether the app runs with production safeguards.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func loadServerConfig() ServerConfig {
	cfg := ServerConfig{
		Host:            getEnv("ATLAS_HOST", "0.0.0.0"),
		Port:            getEnv("ATLAS_PORT", "8080"),
		ReadTimeout:     getEnvDuration("ATLAS_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("ATLAS_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("ATLAS_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("ATLAS_SHUTDOWN_TIMEOUT", 30*time.Second),
	}
	for _, origin := range strings.Split(getEnv("ATLAS_CORS_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}
	return cfg
}

func loadStorageConfig() storage.Config {
	cfg := storage.DefaultConfig()

	if pgURL := getEnv("ATLAS_POSTGRES_URL", ""); pgURL != "" {
		cfg.PostgresURL = pgURL
	}
	if maxConns := getEnvInt("ATLAS_POSTGRES_MAX_CONNS", 0); maxConns > 0 {
		cfg.PostgresMaxConns = maxConns
	}
	if minConns := getEnvInt("ATLAS_POSTGRES_MIN_CONNS", 0); minConns > 0 {
		cfg.PostgresMinConns = minConns
	}
	if timeout := getEnvDuration("ATLAS_POSTGRES_TIMEOUT", 0); timeout > 0 {
		cfg.PostgresTimeout = timeout
	}

	if redisURL := getEnv("ATLAS_REDIS_URL", ""); redisURL != "" {
		cfg.RedisURL = redisURL
	}
	if redisPassword := getEnv("ATLAS_REDIS_PASSWORD", ""); redisPassword != "" {
		cfg.RedisPassword = redisPassword
	}
	if redisDB := getEnvInt("ATLAS_REDIS_DB", -1); redisDB >= 0 {
		cfg.RedisDB = redisDB
	}

	cfg.CacheEnabled = getEnvBool("ATLAS_CACHE_ENABLED", cfg.RedisURL != "")
	if l1Size := getEnvInt("ATLAS_L1_CACHE_SIZE", 0); l1Size > 0 {
		cfg.L1CacheSize = l1Size
	}

	return cfg
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		UserSecret:     getEnv("ATLAS_USER_JWT_SECRET", ""),
		AdminSecret:    getEnv("ATLAS_ADMIN_JWT_SECRET", ""),
		TokenTTL:       getEnvDuration("ATLAS_TOKEN_TTL", 24*time.Hour),
		GoogleClientID: getEnv("ATLAS_GOOGLE_CLIENT_ID", ""),
	}
}

func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:       observability.ParseLogLevel(getEnv("ATLAS_LOG_LEVEL", "info")),
		MetricsEnabled: getEnvBool("ATLAS_METRICS_ENABLED", true),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Environment != EnvDevelopment && c.Environment != EnvProduction {
		return fmt.Errorf("invalid environment: %s (must be development or production)", c.Environment)
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be positive")
	}
	if c.Storage.CacheEnabled && c.Storage.RedisURL == "" {
		return fmt.Errorf("redis URL is required when the cache is enabled")
	}
	if c.IsProduction() && c.Storage.PostgresURL == "" {
		return fmt.Errorf("postgres URL is required in production")
	}
	return nil
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
