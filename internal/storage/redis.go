package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisEngine implements KVEngine over a Redis server, so several
// workstations or containers can share one signed-in session.
type RedisEngine struct {
	client *redis.Client
	prefix string
}

// NewRedisEngine connects to url (redis://[user:pass@]host:port/db) and
// verifies the connection with PING.
func NewRedisEngine(ctx context.Context, url, prefix string) (*RedisEngine, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return &RedisEngine{client: client, prefix: prefix}, nil
}

func (e *RedisEngine) key(k []byte) string {
	return e.prefix + string(k)
}

// Get retrieves a value by key.
func (e *RedisEngine) Get(ctx context.Context, key []byte) ([]byte, error) {
	v, err := e.client.Get(ctx, e.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis: get: %w", err)
	}
	return v, nil
}

// Set stores a key-value pair without expiry; the backend decides when a
// token is no longer valid.
func (e *RedisEngine) Set(ctx context.Context, key, value []byte) error {
	if err := e.client.Set(ctx, e.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis: set: %w", err)
	}
	return nil
}

// SetMany stores all pairs in a MULTI/EXEC transaction.
func (e *RedisEngine) SetMany(ctx context.Context, pairs map[string][]byte) error {
	_, err := e.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range pairs {
			pipe.Set(ctx, e.prefix+k, v, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: set many: %w", err)
	}
	return nil
}

// Delete removes a key.
func (e *RedisEngine) Delete(ctx context.Context, key []byte) error {
	if err := e.client.Del(ctx, e.key(key)).Err(); err != nil {
		return fmt.Errorf("redis: del: %w", err)
	}
	return nil
}

// Close closes the client.
func (e *RedisEngine) Close() error {
	return e.client.Close()
}
