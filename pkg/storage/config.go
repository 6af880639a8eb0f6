package storage

import "time"

// Config selects and configures the backing-store backend.
type Config struct {
	Type string // "memory" or "postgres"

	// PostgreSQL config
	PostgresURL      string
	PostgresMaxConns int
	PostgresMinConns int
	PostgresTimeout  time.Duration

	// Redis cache config
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// Cache config
	CacheEnabled bool
	CacheTTL     time.Duration
	L1CacheSize  int // entries in the in-process LRU
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Type:             "memory",
		PostgresMaxConns: 20,
		PostgresMinConns: 2,
		PostgresTimeout:  10 * time.Second,
		RedisDB:          0,
		CacheEnabled:     false,
		CacheTTL:         5 * time.Minute,
		L1CacheSize:      1024,
	}
}
