package cache

import (
	"context"
	"fmt"
	"time"
)

// Backend names accepted by Open.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config selects and configures a backend.
type Config struct {
	Backend  string        // none, file or redis; empty means file
	Dir      string        // FileCache directory
	RedisURL string        // RedisCache URL
	Prefix   string        // RedisCache key prefix
	TTL      time.Duration // entry expiry; zero means DefaultTTL
}

// EntryTTL returns the configured TTL or DefaultTTL.
func (c Config) EntryTTL() time.Duration {
	if c.TTL > 0 {
		return c.TTL
	}
	return DefaultTTL
}

// Open creates the backend described by cfg.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case BackendNone:
		return NewNullCache(), nil
	case "", BackendFile:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("file cache: no directory configured")
		}
		c, err := NewFileCache(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("redis cache: no url configured")
		}
		c, err := NewRedisCache(ctx, cfg.RedisURL, cfg.Prefix)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
}
