// Package storage provides the ephemeral in-process store and the
// failover router that unifies it with the durable Postgres backend.
package storage

import "time"

// Config for storage backends.
type Config struct {
	// PostgreSQL config. An empty URL leaves the durable backend
	// permanently unavailable and all traffic on the ephemeral store.
	PostgresURL      string
	PostgresMaxConns int
	PostgresMinConns int
	// PostgresTimeout bounds connection acquisition so a fallback
	// decision is reached quickly instead of hanging a request.
	PostgresTimeout time.Duration

	// Redis cache config
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// Cache config
	CacheEnabled bool
	CacheTTL     map[string]time.Duration
	L1CacheSize  int // entries in the in-process slug-lookup cache
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		PostgresMaxConns: 20,
		PostgresMinConns: 2,
		PostgresTimeout:  3 * time.Second,
		RedisDB:          0,
		CacheEnabled:     true,
		CacheTTL: map[string]time.Duration{
			"list":   5 * time.Minute,
			"entity": 15 * time.Minute,
			"menu":   1 * time.Hour,
		},
		L1CacheSize: 1024,
	}
}
