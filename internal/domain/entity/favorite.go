package entity

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is the association between a user and an item they bookmarked.
// At most one row exists per (user, item) pair; the row's existence is the
// "is favorited" predicate.
type Favorite struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ItemID    uuid.UUID
	CreatedAt time.Time
}

// ItemView is an append-only record of a single item page visit. Views are
// never updated or deleted; anonymous visits carry a nil UserID.
type ItemView struct {
	ID        uuid.UUID
	ItemID    uuid.UUID
	UserID    *uuid.UUID
	UserAgent string
	CreatedAt time.Time
}
