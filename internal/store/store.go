// Package store holds the persistent key/value contract the ledger writes
// its JSON collections through, plus SQLite and in-memory implementations.
package store

import "context"

// Store maps string keys to string values within one application namespace.
// Set is durable once it returns.
type Store interface {
	// Get returns def when key has never been written.
	Get(ctx context.Context, key, def string) (string, error)
	Set(ctx context.Context, key, value string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error

	// Atomic runs fn against a view of the store whose writes are applied
	// all together when fn returns nil and discarded otherwise.
	Atomic(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}
