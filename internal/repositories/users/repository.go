// Package users is the user directory: the durable list of registered
// accounts stored as a single JSON array record.
package users

import (
	"context"

	"github.com/dmitrijs2005/eventreg/internal/models"
)

// Repository reads and replaces the user directory.
type Repository interface {
	// List returns all users in registration order. An absent or corrupted
	// record reads as an empty directory.
	List(ctx context.Context) ([]models.User, error)

	// SaveAll replaces the whole directory.
	SaveAll(ctx context.Context, users []models.User) error

	// GetByID returns the user with the given id or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByPhone returns the user with the given phone or common.ErrNotFound.
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
}
