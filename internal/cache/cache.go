// Package cache stores raw upstream responses keyed by the fully-resolved
// request locator, each with an absolute expiry. Expired entries are evicted
// lazily on the next lookup; there is no background sweep.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"lol-insights/internal/config"
)

type Cache interface {
	// Get returns the stored value when present and not yet expired.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores value under key until now+ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key if present.
	Delete(ctx context.Context, key string) error
}

// New builds the backend selected in config.
func New(cfg *config.Config, logger zerolog.Logger) (Cache, error) {
	switch cfg.CacheBackend {
	case "", "memory":
		logger.Info().Msg("using in-memory response cache")
		return NewMemory(), nil
	case "sqlite":
		logger.Info().Str("path", cfg.CacheDBPath).Msg("using sqlite response cache")
		return NewSQLite(cfg.CacheDBPath, logger)
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.CacheBackend)
	}
}
