package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/eventreg/internal/logging"
)

// DefaultPrefix namespaces every record key, playing the role of a browser
// origin: two stores with different prefixes never see each other's data.
const DefaultPrefix = "ev_"

// Store reads and writes JSON records on a Backend under a key prefix.
type Store struct {
	backend Backend
	prefix  string
	log     logging.Logger
}

func NewStore(backend Backend, prefix string, log logging.Logger) *Store {
	return &Store{backend: backend, prefix: prefix, log: log}
}

// Key returns the backend key for a logical record name.
func (s *Store) Key(name string) string {
	return s.prefix + name
}

// Read decodes the record stored under name into a fresh T.
//
// A missing record yields fallback. A record that cannot be decoded is
// logged and also yields fallback, so callers never see corrupted data.
// The returned error is set only when the backend itself fails.
func Read[T any](ctx context.Context, s *Store, name string, fallback T) (T, error) {
	key := s.Key(name)

	raw, err := s.backend.Get(ctx, key)
	if err != nil {
		return fallback, err
	}
	if raw == nil {
		return fallback, nil
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.log.Warn(ctx, "discarding undecodable record", "key", key, "error", err)
		return fallback, nil
	}
	return v, nil
}

// Write encodes value as JSON and stores it under name, replacing whatever
// was there.
func (s *Store) Write(ctx context.Context, name string, value any) error {
	key := s.Key(name)

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode kv[%s]: %w", key, err)
	}
	return s.backend.Set(ctx, key, raw)
}

// Remove deletes the record stored under name. Removing a missing record is
// a no-op.
func (s *Store) Remove(ctx context.Context, name string) error {
	return s.backend.Delete(ctx, s.Key(name))
}
