package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/yndnr/leasedesk-go/internal/telemetry/logger"
)

// Keys of the two durable session entries.
const (
	TokenKey = "@contracts-management:token"
	UserKey  = "@contracts-management:user"
)

// batchSetter is implemented by engines that can write several keys in
// one transaction.
type batchSetter interface {
	SetMany(ctx context.Context, pairs map[string][]byte) error
}

func setMany(ctx context.Context, e KVEngine, pairs map[string][]byte) error {
	if b, ok := e.(batchSetter); ok {
		return b.SetMany(ctx, pairs)
	}
	for k, v := range pairs {
		if err := e.Set(ctx, []byte(k), v); err != nil {
			return err
		}
	}
	return nil
}

// TokenStore keeps the bearer token and the serialized user in a KVEngine.
// It is a passive mirror: the session manager is its only writer.
type TokenStore struct {
	engine KVEngine
	logger logger.Logger
}

// TokenStoreOption configures a TokenStore.
type TokenStoreOption func(*TokenStore)

// WithTokenStoreLogger sets the logger.
func WithTokenStoreLogger(l logger.Logger) TokenStoreOption {
	return func(s *TokenStore) { s.logger = l }
}

// NewTokenStore creates a token store over engine.
func NewTokenStore(engine KVEngine, opts ...TokenStoreOption) *TokenStore {
	s := &TokenStore{engine: engine, logger: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns both entries; an absent entry is returned empty. An entry
// that cannot be unsealed (written in plaintext, under another secret or
// by another machine) is treated as absent, so the session starts
// Anonymous and the next sign-in or sign-out overwrites it.
func (s *TokenStore) Load(ctx context.Context) (string, []byte, error) {
	token, err := s.get(ctx, TokenKey)
	if err != nil {
		return "", nil, err
	}
	user, err := s.get(ctx, UserKey)
	if err != nil {
		return "", nil, err
	}
	return string(token), user, nil
}

func (s *TokenStore) get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.engine.Get(ctx, []byte(key))
	if errors.Is(err, ErrKeyNotFound) {
		return nil, nil
	}
	if errors.Is(err, ErrUnseal) {
		s.logger.Warn("ignoring unreadable stored entry", "key", key, "error", err)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("token store: get %s: %w", key, err)
	}
	return v, nil
}

// Save writes both entries, in one transaction when the engine allows it.
func (s *TokenStore) Save(ctx context.Context, token string, user []byte) error {
	err := setMany(ctx, s.engine, map[string][]byte{
		TokenKey: []byte(token),
		UserKey:  user,
	})
	if err != nil {
		return fmt.Errorf("token store: save: %w", err)
	}
	return nil
}

// Clear deletes both entries. Both deletes are attempted even if the
// first fails.
func (s *TokenStore) Clear(ctx context.Context) error {
	err := errors.Join(
		s.engine.Delete(ctx, []byte(TokenKey)),
		s.engine.Delete(ctx, []byte(UserKey)),
	)
	if err != nil {
		return fmt.Errorf("token store: clear: %w", err)
	}
	return nil
}
