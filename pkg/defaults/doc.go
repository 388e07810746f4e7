// Package defaults provides centralized configuration constants for DevEngine.
//
// This package defines timeout values and request limits used across the
// codebase. Centralizing these values ensures consistency and makes tuning
// easier.
//
// # Timeout Categories
//
//   - Handler timeouts: For HTTP request processing
//   - Server timeouts: For HTTP server configuration
//   - Store timeouts: For the Redis-backed template store
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(r.Context(), defaults.GenerateHandlerTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
//   - HTTP handlers: 30s for generation, 10s for template operations
//   - Redis: 5s dial, 3s per command
//   - Server shutdown: 30s for graceful shutdown
package defaults
