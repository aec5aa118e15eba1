// Package storage persists the signed-in session.
//
// A KVEngine holds two entries, the bearer token and the serialized user;
// TokenStore maps them onto the session manager's store contract.
//
// Backends:
//
//   - badger.go: embedded Badger database under ~/.leasedesk/store (default)
//   - redis.go: shared Redis server
//   - memory.go: process-local map, for tests and throwaway sessions
//
// seal.go optionally encrypts values at rest with a key derived from a
// per-installation secret.
package storage
