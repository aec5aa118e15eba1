package storage

import (
	"context"
	"fmt"

	"github.com/yndnr/leasedesk-go/internal/telemetry/logger"
)

// RedisKeyPrefix namespaces leasedesk keys on a shared Redis.
const RedisKeyPrefix = "leasedesk:"

// Open creates the engine selected by cfg.Backend, sealed when
// cfg.Encrypt is set. The sealing secret always lives in cfg.Dir.
func Open(ctx context.Context, cfg KVConfig, l logger.Logger) (KVEngine, error) {
	if l == nil {
		l = logger.Nop()
	}

	var (
		engine KVEngine
		err    error
	)
	switch cfg.Backend {
	case "", BackendBadger:
		engine, err = NewBadgerEngine(cfg, l)
	case BackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("storage: redis backend needs store.redis_url")
		}
		engine, err = NewRedisEngine(ctx, cfg.RedisURL, RedisKeyPrefix)
	case BackendMemory:
		engine = NewMemoryEngine()
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	if !cfg.Encrypt {
		return engine, nil
	}
	secret, err := LoadOrCreateSecret(cfg.Dir)
	if err != nil {
		_ = engine.Close()
		return nil, err
	}
	sealed, err := NewSealedEngine(engine, secret)
	if err != nil {
		_ = engine.Close()
		return nil, err
	}
	l.Debug("token store sealed", "backend", cfg.Backend)
	return sealed, nil
}
