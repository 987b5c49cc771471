package repository

import (
	"context"
	"errors"

	"github.com/JonnyWalker81/energy/backend/internal/models"
)

// ErrNotFound is returned when an activity does not exist for the owner.
// A record owned by someone else is reported the same way.
var ErrNotFound = errors.New("activity not found")

// ActivityStore persists activities. Every method is scoped to one owner.
// QueryByOwner returns records in no particular order; ordering and window
// filtering are the analytics engine's job, not the store's.
type ActivityStore interface {
	Create(ctx context.Context, activity *models.Activity) error
	GetByID(ctx context.Context, ownerID, id string) (*models.Activity, error)
	Update(ctx context.Context, activity *models.Activity) error
	Delete(ctx context.Context, ownerID, id string) error
	DeleteMany(ctx context.Context, ownerID string, ids []string) (int64, error)
	QueryByOwner(ctx context.Context, ownerID string) ([]models.Activity, error)
}

// Store is an ActivityStore that owns a database handle.
type Store interface {
	ActivityStore
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
