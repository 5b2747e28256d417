package users

import (
	"context"

	"github.com/dmitrijs2005/eventreg/internal/common"
	"github.com/dmitrijs2005/eventreg/internal/models"
	"github.com/dmitrijs2005/eventreg/internal/storage"
)

const recordKey = "users"

type KVRepository struct {
	store *storage.Store
}

func NewKVRepository(store *storage.Store) *KVRepository {
	return &KVRepository{store: store}
}

func (r *KVRepository) List(ctx context.Context) ([]models.User, error) {
	users, err := storage.Read(ctx, r.store, recordKey, []models.User{})
	if err != nil {
		return nil, err
	}
	if users == nil {
		// a stored JSON null
		users = []models.User{}
	}
	return users, nil
}

func (r *KVRepository) SaveAll(ctx context.Context, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	return r.store.Write(ctx, recordKey, users)
}

func (r *KVRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.find(ctx, func(u models.User) bool { return u.ID == id })
}

func (r *KVRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	return r.find(ctx, func(u models.User) bool { return u.Phone == phone })
}

func (r *KVRepository) find(ctx context.Context, match func(models.User) bool) (*models.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}
