// Package storage is the persistence adapter of eventreg.
//
// # Overview
//
// A Backend is a durable, string-keyed byte store: Get/Set/Delete with
// upsert semantics and (nil, nil) for absent keys. Three backends exist:
//
//   - MemoryBackend   process-local map, used by tests and "memory" mode
//   - SQLBackend      kv_store table in SQLite (modernc) or PostgreSQL (pgx)
//   - RedisBackend    plain GET/SET/DEL on a Redis server
//
// Store layers a key namespace and JSON encoding on top of a Backend. Reads
// never fail on corrupted data: Read logs the problem and hands back the
// caller's fallback value. Only backend I/O errors are returned.
//
// There is no transactional guarantee across keys.
package storage

import "context"

// Backend is the raw key/value medium behind a Store.
type Backend interface {
	// Get returns the value stored under key, or (nil, nil) if there is none.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
