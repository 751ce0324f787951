package repository

import (
	"context"
	"errors"

	"opencycle/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrFavoriteNotFound is returned when no favorite exists for the pair.
	ErrFavoriteNotFound = errors.New("favorite not found")

	// ErrDuplicateFavorite is returned when an insert hits the unique
	// (user_id, item_id) constraint. The toggle operation treats it as
	// "already favorited", not as a failure.
	ErrDuplicateFavorite = errors.New("favorite already exists")
)

// FavoriteRepository manages the (user, item) favorite association. The
// database's unique constraint is the source of truth for uniqueness; this
// layer only translates the constraint violation into ErrDuplicateFavorite.
type FavoriteRepository interface {
	// Find retrieves the favorite for the pair, or ErrFavoriteNotFound.
	Find(ctx context.Context, userID, itemID uuid.UUID) (*entity.Favorite, error)

	// Create inserts a favorite row, surfacing ErrDuplicateFavorite on conflict.
	Create(ctx context.Context, favorite *entity.Favorite) error

	// Delete removes the favorite for the pair.
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
}

// ItemViewRepository appends page-visit records. Views are write-once;
// nothing in this layer ever updates or deletes them.
type ItemViewRepository interface {
	Create(ctx context.Context, view *entity.ItemView) error
}
