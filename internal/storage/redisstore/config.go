package redisstore

import "time"

// Config holds Redis connection and key settings.
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// KeyPrefix namespaces every key this store writes.
	KeyPrefix string

	// OpTimeout bounds calls made through the context-free adapters.
	OpTimeout time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration.
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		KeyPrefix:    "ballpop",
		OpTimeout:    2 * time.Second,
	}
}
