package repository

import (
	"context"
	"errors"

	"opencycle/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrItemNotFound is returned when an item does not exist or is not visible
// to the caller. It is distinct from transport failures so the delivery layer
// can render a dedicated not-found state.
var ErrItemNotFound = errors.New("item not found")

// ItemRepository defines the standard operations for item persistence,
// including the database-computed search and stats aggregates.
type ItemRepository interface {
	// FindByID retrieves a single item with its owner (and the owner's
	// profile) joined in.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)

	// ListAvailable retrieves every available item, newest first, with owners joined.
	ListAvailable(ctx context.Context) ([]*entity.Item, error)

	// ListByOwner retrieves all of an owner's items, available and claimed, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Item, error)

	// Create persists a new item and fills in the generated ID and timestamps.
	Create(ctx context.Context, item *entity.Item) error

	// UpdateAvailability sets exactly is_available on an item owned by
	// ownerID. Returns ErrItemNotFound when no such row exists.
	UpdateAvailability(ctx context.Context, itemID, ownerID uuid.UUID, available bool) error

	// Delete hard-deletes an item owned by ownerID.
	Delete(ctx context.Context, itemID, ownerID uuid.UUID) error

	// Search runs the database full-text search over available items and
	// returns rows ordered by relevance. No ranking happens in Go.
	Search(ctx context.Context, query string, limit, offset int) ([]*entity.RankedItem, error)

	// Stats computes the engagement counters for one item in a single query.
	Stats(ctx context.Context, itemID uuid.UUID) (*entity.ItemStats, error)

	// StatsForOwner aggregates counts across all of a user's items.
	StatsForOwner(ctx context.Context, ownerID uuid.UUID) (*entity.UserStats, error)
}
