package model

import (
	"time"

	"github.com/google/uuid"
)

// ItemModel mirrors the 'items' table. The search_vector column is a
// database-generated tsvector over title and description; GORM never writes
// it, so it carries the ->(-) permission tags.
type ItemModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text;not null"`
	ImageURL    string    `gorm:"type:text"`
	Category    string    `gorm:"type:varchar(100);not null;index"`
	Condition   string    `gorm:"type:item_condition;not null"`
	Location    string    `gorm:"type:varchar(255)"`
	IsAvailable bool      `gorm:"not null;default:true;index"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time `gorm:"index:idx_items_created_at,sort:desc"`
	UpdatedAt   time.Time

	SearchVector string `gorm:"->:false;<-:false"`

	Owner *UserModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (ItemModel) TableName() string {
	return "items"
}
