package storage

import (
	"context"
	"errors"
)

// Common errors.
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrClosed      = errors.New("kv engine closed")
)

// KVEngine is the key/value contract every backend implements. The token
// store only needs point reads and writes.
//
// Implementations must be safe for concurrent use and return ErrKeyNotFound
// for absent keys.
type KVEngine interface {
	// Get retrieves a value by key.
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Set stores a key-value pair.
	Set(ctx context.Context, key, value []byte) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key []byte) error

	// Close releases the engine.
	Close() error
}

// Backend names accepted by KVConfig.Backend.
const (
	BackendBadger = "badger"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// KVConfig selects and configures a backend.
type KVConfig struct {
	// Backend is one of "badger", "redis", "memory". Default: "badger".
	Backend string

	// Dir is the Badger directory; it also holds the sealing secret.
	Dir string

	// RedisURL is a redis:// URL for the shared backend.
	RedisURL string

	// Encrypt seals values at rest with a per-installation key.
	Encrypt bool

	// Badger-specific tuning.
	Badger BadgerConfig
}

// BadgerConfig contains Badger tuning for a tiny, write-rarely store.
type BadgerConfig struct {
	// GCThreshold is the value log discard ratio used on Close.
	// Default: 0.5
	GCThreshold float64

	// SyncWrites fsyncs after each write. Default: true, a lost sign-in
	// write would silently log the user out.
	SyncWrites bool

	// ValueLogFileSize caps a value log file. Default: 16MB.
	ValueLogFileSize int64

	// IndexCacheSize bounds the index cache. Default: 1MB.
	IndexCacheSize int64
}

// DefaultKVConfig returns the default configuration for dir.
func DefaultKVConfig(dir string) KVConfig {
	return KVConfig{
		Backend: BackendBadger,
		Dir:     dir,
		Badger:  DefaultBadgerConfig(),
	}
}

// DefaultBadgerConfig returns the default Badger configuration.
func DefaultBadgerConfig() BadgerConfig {
	return BadgerConfig{
		GCThreshold:      0.5,
		SyncWrites:       true,
		ValueLogFileSize: 16 << 20,
		IndexCacheSize:   1 << 20,
	}
}
