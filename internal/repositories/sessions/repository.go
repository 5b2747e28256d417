// Package sessions stores the single active session record.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/eventreg/internal/models"
	"github.com/dmitrijs2005/eventreg/internal/storage"
)

const recordKey = "session"

// Repository holds at most one session per storage namespace.
type Repository interface {
	// Get returns the active session, or nil when nobody is logged in or the
	// record is unreadable.
	Get(ctx context.Context) (*models.Session, error)

	// Set replaces the active session.
	Set(ctx context.Context, s models.Session) error

	// Clear removes the active session. Clearing twice is fine.
	Clear(ctx context.Context) error
}

type KVRepository struct {
	store *storage.Store
}

func NewKVRepository(store *storage.Store) *KVRepository {
	return &KVRepository{store: store}
}

func (r *KVRepository) Get(ctx context.Context) (*models.Session, error) {
	s, err := storage.Read[*models.Session](ctx, r.store, recordKey, nil)
	if err != nil {
		return nil, err
	}
	if s == nil || s.UserID == "" {
		return nil, nil
	}
	return s, nil
}

func (r *KVRepository) Set(ctx context.Context, s models.Session) error {
	return r.store.Write(ctx, recordKey, s)
}

func (r *KVRepository) Clear(ctx context.Context) error {
	return r.store.Remove(ctx, recordKey)
}
