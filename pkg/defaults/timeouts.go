package defaults

import "time"

// Handler timeouts.
const (
	// GenerateHandlerTimeout bounds a single manifest generation request.
	GenerateHandlerTimeout = 30 * time.Second

	// TemplateHandlerTimeout bounds template store requests.
	TemplateHandlerTimeout = 10 * time.Second
)

// Server timeouts.
const (
	ServerReadTimeout     = 10 * time.Second
	ServerWriteTimeout    = 30 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Request limits.
const (
	// MaxRequestBodyBytes caps topology and template payloads.
	MaxRequestBodyBytes int64 = 1 << 20

	// MaxTiers caps the number of tiers in one topology.
	MaxTiers = 64
)

// Store timeouts.
const (
	// RedisDialTimeout is the connection timeout for the Redis template store.
	RedisDialTimeout = 5 * time.Second

	// RedisOperationTimeout bounds a single Redis command.
	RedisOperationTimeout = 3 * time.Second
)
