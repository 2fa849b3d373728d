package cache

import (
	"context"
	"fmt"
	"time"
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Options selects and configures a backend.
type Options struct {
	Backend  string
	Dir      string // file backend; empty means DefaultDir
	RedisURL string // redis backend

	// MaxTTL caps entry lifetimes when positive.
	MaxTTL time.Duration
}

// Open returns the configured backend. An empty backend name means file.
func Open(ctx context.Context, opts Options) (Cache, error) {
	c, err := open(ctx, opts)
	if err != nil {
		return nil, err
	}
	return WithMaxTTL(c, opts.MaxTTL), nil
}

func open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendFile:
		dir := opts.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, fmt.Errorf("cache dir: %w", err)
			}
			dir = d
		}
		fc, err := NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	case BackendRedis:
		if opts.RedisURL == "" {
			return nil, fmt.Errorf("redis backend requires a url")
		}
		rc, err := NewRedisCache(ctx, opts.RedisURL)
		if err != nil {
			return nil, err
		}
		return rc, nil
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
