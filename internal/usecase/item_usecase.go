package usecase

import (
	"context"

	"opencycle/internal/domain/entity"

	"github.com/google/uuid"
)

// FileUpload carries an uploaded file through the use case layer. Data is
// fully buffered; upload size limits are enforced before it gets here.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// --- Input DTOs ---

// CreateItemInput defines the data required to list a new item. Image is
// optional; when present it is stored before the item row is written.
type CreateItemInput struct {
	Title       string
	Description string
	Category    string
	Condition   entity.Condition
	Location    string
	Image       *FileUpload
}

// SearchItemsInput carries a free-text query with paging bounds.
type SearchItemsInput struct {
	Query  string
	Limit  int
	Offset int
}

// --- Output DTOs ---

// ItemDetailOutput is everything the item page needs in one shot: the item,
// its engagement stats, the viewer's favorite state and the contact channels
// the viewer is allowed to see.
type ItemDetailOutput struct {
	Item        *entity.Item
	Stats       *entity.ItemStats
	IsFavorited bool
	Contact     entity.ContactCard
}

// ItemUsecase defines the interface for item-related business operations.
type ItemUsecase interface {
	// ListAvailable returns the browsable feed of available items, newest
	// first, narrowed by the filter. Failures degrade to an empty feed.
	ListAvailable(ctx context.Context, filter entity.ItemFilter) ([]*entity.Item, error)

	// ListMine returns all of the owner's items, available and claimed.
	ListMine(ctx context.Context, ownerID uuid.UUID) ([]*entity.Item, error)

	// Get assembles the item detail for a viewer. viewerID is nil for
	// anonymous visitors.
	Get(ctx context.Context, itemID uuid.UUID, viewerID *uuid.UUID) (*ItemDetailOutput, error)

	// Create stores the optional image and then persists the listing.
	// New items are always available.
	Create(ctx context.Context, ownerID uuid.UUID, input CreateItemInput) (*entity.Item, error)

	// SetAvailability marks the owner's item as available or claimed.
	SetAvailability(ctx context.Context, itemID, ownerID uuid.UUID, available bool) error

	// Delete permanently removes the owner's item.
	Delete(ctx context.Context, itemID, ownerID uuid.UUID) error

	// ToggleFavorite flips the user's favorite for the item and reports the
	// resulting state.
	ToggleFavorite(ctx context.Context, userID, itemID uuid.UUID) (favorited bool, err error)

	// RecordView appends a page-visit record. It never fails the caller.
	RecordView(ctx context.Context, itemID uuid.UUID, viewerID *uuid.UUID, userAgent string)

	// Stats returns engagement counters for an item, or nil when the
	// counters cannot be computed.
	Stats(ctx context.Context, itemID uuid.UUID) *entity.ItemStats

	// Search runs relevance-ranked full-text search over available items.
	Search(ctx context.Context, input SearchItemsInput) ([]*entity.RankedItem, error)

	// ShareQR renders a QR code PNG linking to the item's public page.
	ShareQR(ctx context.Context, itemID uuid.UUID) ([]byte, error)
}
