package storage

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// SecretFile is the name of the per-installation sealing secret.
const SecretFile = "store.secret"

const (
	secretLength = 32
	sealVersion  = byte(1)
	sealInfo     = "leasedesk token store v1"
)

// ErrUnseal is returned when a stored value cannot be decrypted: wrong
// secret, corrupted data, or a value moved under another key.
var ErrUnseal = errors.New("storage: cannot unseal value")

// SealedEngine encrypts every value with XChaCha20-Poly1305 before handing
// it to the wrapped engine. The key is used as additional data, so a value
// copied under a different key fails to open.
type SealedEngine struct {
	inner KVEngine
	aead  cipher.AEAD
}

// NewSealedEngine wraps inner with a key derived from secret via HKDF.
func NewSealedEngine(inner KVEngine, secret []byte) (*SealedEngine, error) {
	if len(secret) < secretLength {
		return nil, fmt.Errorf("storage: sealing secret must be at least %d bytes", secretLength)
	}
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(sealInfo)), key); err != nil {
		return nil, fmt.Errorf("storage: derive key: %w", err)
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	return &SealedEngine{inner: inner, aead: aead}, nil
}

// LoadOrCreateSecret reads the secret from dir, creating it with 0600
// permissions on first use.
func LoadOrCreateSecret(dir string) ([]byte, error) {
	path := filepath.Join(dir, SecretFile)
	secret, err := os.ReadFile(path)
	if err == nil {
		if len(secret) < secretLength {
			return nil, fmt.Errorf("storage: %s is truncated", path)
		}
		return secret, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("storage: read secret: %w", err)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("storage: create dir: %w", err)
	}
	secret = make([]byte, secretLength)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("storage: generate secret: %w", err)
	}
	if err := os.WriteFile(path, secret, 0o600); err != nil {
		return nil, fmt.Errorf("storage: write secret: %w", err)
	}
	return secret, nil
}

func (e *SealedEngine) seal(key, plaintext []byte) ([]byte, error) {
	nonce := make([]byte, e.aead.NonceSize(), 1+e.aead.NonceSize()+len(plaintext)+e.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	out := append([]byte{sealVersion}, nonce...)
	return e.aead.Seal(out, nonce, plaintext, key), nil
}

func (e *SealedEngine) open(key, sealed []byte) ([]byte, error) {
	n := e.aead.NonceSize()
	if len(sealed) < 1+n+e.aead.Overhead() || sealed[0] != sealVersion {
		return nil, ErrUnseal
	}
	plaintext, err := e.aead.Open(nil, sealed[1:1+n], sealed[1+n:], key)
	if err != nil {
		return nil, ErrUnseal
	}
	return plaintext, nil
}

// Get retrieves and decrypts a value.
func (e *SealedEngine) Get(ctx context.Context, key []byte) ([]byte, error) {
	sealed, err := e.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return e.open(key, sealed)
}

// Set encrypts and stores a value.
func (e *SealedEngine) Set(ctx context.Context, key, value []byte) error {
	sealed, err := e.seal(key, value)
	if err != nil {
		return err
	}
	return e.inner.Set(ctx, key, sealed)
}

// SetMany encrypts every value and writes them through the wrapped
// engine's batch when it has one.
func (e *SealedEngine) SetMany(ctx context.Context, pairs map[string][]byte) error {
	sealed := make(map[string][]byte, len(pairs))
	for k, v := range pairs {
		s, err := e.seal([]byte(k), v)
		if err != nil {
			return err
		}
		sealed[k] = s
	}
	return setMany(ctx, e.inner, sealed)
}

// Delete removes a key.
func (e *SealedEngine) Delete(ctx context.Context, key []byte) error {
	return e.inner.Delete(ctx, key)
}

// Close closes the wrapped engine.
func (e *SealedEngine) Close() error {
	return e.inner.Close()
}
