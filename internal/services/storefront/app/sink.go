package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/storefront/internal/platform/timeouts"
	"github.com/louisbranch/storefront/internal/services/storefront/snapshot"
	"github.com/louisbranch/storefront/internal/services/storefront/storage/redis"
	"github.com/louisbranch/storefront/internal/services/storefront/storage/sqlite"
)

// Snapshot sink backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// SinkConfig selects and configures the snapshot sink.
type SinkConfig struct {
	Backend    string
	FilePath   string
	SQLitePath string
	RedisAddr  string
	RedisKey   string
}

// OpenSink opens the configured sink. The none backend returns a nil sink.
// The returned close function is always safe to call.
func OpenSink(ctx context.Context, cfg SinkConfig) (snapshot.Sink, func() error, error) {
	noop := func() error { return nil }
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendFile:
		if strings.TrimSpace(cfg.FilePath) == "" {
			return nil, noop, fmt.Errorf("file snapshot sink requires a path")
		}
		return snapshot.FileSink{Path: cfg.FilePath}, noop, nil
	case BackendSQLite:
		if strings.TrimSpace(cfg.SQLitePath) == "" {
			return nil, noop, fmt.Errorf("sqlite snapshot sink requires a path")
		}
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, noop, fmt.Errorf("open sqlite snapshot sink: %w", err)
		}
		return store, store.Close, nil
	case BackendRedis:
		dialCtx, cancel := context.WithTimeout(ctx, timeouts.SinkDial)
		defer cancel()
		store, err := redis.Dial(dialCtx, cfg.RedisAddr, cfg.RedisKey)
		if err != nil {
			return nil, noop, fmt.Errorf("open redis snapshot sink: %w", err)
		}
		return store, store.Close, nil
	case BackendNone:
		return nil, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown snapshot backend %q", cfg.Backend)
	}
}
