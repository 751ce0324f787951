package model

import (
	"time"

	"github.com/google/uuid"
)

// ItemViewModel mirrors the 'item_views' table. Rows are append-only;
// UserID is null for anonymous visitors.
type ItemViewModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ItemID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID    *uuid.UUID `gorm:"type:uuid"`
	UserAgent string     `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ItemViewModel) TableName() string {
	return "item_views"
}
