// Package userdata stores the per-user event state of every user as one
// JSON object keyed by user id.
package userdata

import (
	"context"

	"github.com/dmitrijs2005/eventreg/internal/models"
	"github.com/dmitrijs2005/eventreg/internal/storage"
)

const recordKey = "user_data"

// Repository reads and replaces the whole user_data mapping. Callers do the
// read-modify-write; the repository gives no cross-call atomicity.
type Repository interface {
	// LoadAll returns the mapping. Absent or corrupted data reads as empty.
	LoadAll(ctx context.Context) (map[string]*models.UserEventState, error)

	// SaveAll replaces the mapping.
	SaveAll(ctx context.Context, all map[string]*models.UserEventState) error
}

type KVRepository struct {
	store *storage.Store
}

func NewKVRepository(store *storage.Store) *KVRepository {
	return &KVRepository{store: store}
}

func (r *KVRepository) LoadAll(ctx context.Context) (map[string]*models.UserEventState, error) {
	all, err := storage.Read(ctx, r.store, recordKey, map[string]*models.UserEventState{})
	if err != nil {
		return nil, err
	}
	if all == nil {
		all = map[string]*models.UserEventState{}
	}
	return all, nil
}

func (r *KVRepository) SaveAll(ctx context.Context, all map[string]*models.UserEventState) error {
	return r.store.Write(ctx, recordKey, all)
}
