package entity

import (
	"time"

	"github.com/google/uuid"
)

// Condition describes the physical state of a listed item.
// The set is closed; the database enforces it with an enum type.
type Condition string

const (
	ConditionNew     Condition = "new"
	ConditionLikeNew Condition = "like-new"
	ConditionGood    Condition = "good"
	ConditionFair    Condition = "fair"
	ConditionPoor    Condition = "poor"
)

// Conditions lists every valid condition, in display order.
var Conditions = []Condition{
	ConditionNew,
	ConditionLikeNew,
	ConditionGood,
	ConditionFair,
	ConditionPoor,
}

// Valid reports whether c is one of the enumerated conditions.
func (c Condition) Valid() bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}

	return false
}

// Categories is the suggestion set offered by the UI. Category remains
// free text at the store level.
var Categories = []string{
	"Electronics",
	"Furniture",
	"Clothing",
	"Books",
	"Toys",
	"Kitchen",
	"Sports",
	"Other",
}

// Item is a single giveaway listing. UserID is immutable after creation;
// IsAvailable defaults to true and flips to false once the item is claimed.
type Item struct {
	ID          uuid.UUID
	Title       string
	Description string
	ImageURL    string // Optional public URL of the item photo.
	Category    string
	Condition   Condition
	Location    string
	IsAvailable bool
	UserID      uuid.UUID // The owner. Never changes after creation.
	Owner       *User     // Joined owner identity/profile; nil when not requested.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RankedItem is an item returned by full-text search together with its
// relevance score. Ranking is computed entirely by the database.
type RankedItem struct {
	Item
	Rank float64
}
