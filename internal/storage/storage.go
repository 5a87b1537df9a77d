// Package storage provides the synchronous key-value substrate the
// entity collections persist into. Each key holds one JSON-encoded
// collection or singleton.
//
// There is no cross-process coordination: two processes mutating the
// same key race and the last writer wins. This is an accepted limitation
// of the single-admin-operator deployment, not something the backends
// try to paper over.
package storage

import "context"

// Backend is the persistence port. Implementations are synchronous;
// a Set either fully replaces the value under key or fails leaving the
// previously persisted value untouched.
type Backend interface {
	// Get returns the value under key. ok is false when the key is
	// absent, which is not an error.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set replaces the value under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error

	// Used reports the total bytes currently stored.
	Used(ctx context.Context) (int64, error)

	Close() error
}

// DefaultQuotaBytes mirrors the small per-origin quota of the browser
// storage this substrate replaces.
const DefaultQuotaBytes int64 = 5 * 1024 * 1024
