// Package kv provides the key-value store abstraction the account repository
// persists into. Keys are opaque strings and values are small JSON documents.
// The interface deliberately offers no transactions or conditional writes;
// callers must not assume multi-key atomicity.
package kv

import "context"

// ErrNotFound is returned by Get when no value exists for the key.
const ErrNotFound Error = "key not found"

// Error is an error type returned by store implementations.
type Error string

// Error satisfies [error].
func (e Error) Error() string { return string(e) }

// Store is a minimal get/put key-value store. Implementations must be safe
// for concurrent use; per-key reads and writes are consistent, but nothing is
// guaranteed across keys.
type Store interface {
	// Get returns the value stored at key. An [ErrNotFound] is returned if
	// the key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores value at key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
	// Close releases any resources held by the store.
	Close() error
}
