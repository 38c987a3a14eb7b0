package server

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"wasup-chucks/internal/cache"
	"wasup-chucks/internal/config"
	"wasup-chucks/internal/kvstore"
	"wasup-chucks/internal/logging"
	"wasup-chucks/internal/rediscache"
	"wasup-chucks/internal/snapshots"
)

const sqliteFile = "menu_cache.db"

// buildPersistent opens the configured persistent cache tier. The returned close func is never nil.
func buildPersistent(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (cache.PersistentStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.BackendMemory:
		return nil, noop, nil
	case config.BackendSQLite:
		st, err := kvstore.New(filepath.Join(cfg.DataDir, sqliteFile))
		if err != nil {
			return nil, noop, fmt.Errorf("open sqlite cache: %w", err)
		}
		return st, st.Close, nil
	case config.BackendRedis:
		st, err := rediscache.New(ctx, rediscache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err != nil {
			return nil, noop, fmt.Errorf("connect redis cache: %w", err)
		}
		return st, st.Close, nil
	case config.BackendFile:
		return snapshots.NewFSStore(cfg.DataDir), noop, nil
	default:
		logging.Warn(logger, "unknown cache backend, using files", slog.String("backend", cfg.Backend))
		return snapshots.NewFSStore(cfg.DataDir), noop, nil
	}
}
