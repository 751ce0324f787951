package handler

import (
	"time"

	"opencycle/internal/domain/entity"
	"opencycle/internal/usecase"

	"github.com/google/uuid"
)

// View structs shape entities for JSON responses. Contact channels are never
// serialized from the raw profile on item endpoints; they go through the
// gated contactView instead.

type userView struct {
	ID        uuid.UUID    `json:"id"`
	Email     string       `json:"email"`
	Name      string       `json:"name"`
	Profile   *profileView `json:"profile,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

type profileView struct {
	Bio                string                    `json:"bio"`
	Location           string                    `json:"location"`
	AvatarURL          string                    `json:"avatar_url"`
	Phone              string                    `json:"phone"`
	WhatsApp           string                    `json:"whatsapp"`
	Instagram          string                    `json:"instagram"`
	ContactPreferences entity.ContactPreferences `json:"contact_preferences"`
}

type itemOwnerView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
}

type itemView struct {
	ID          uuid.UUID        `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	ImageURL    string           `json:"image_url,omitempty"`
	Category    string           `json:"category"`
	Condition   entity.Condition `json:"condition"`
	Location    string           `json:"location,omitempty"`
	IsAvailable bool             `json:"is_available"`
	Owner       *itemOwnerView   `json:"owner,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

type rankedItemView struct {
	itemView
	Rank float64 `json:"rank"`
}

type itemStatsView struct {
	ViewCount     int64 `json:"view_count"`
	FavoriteCount int64 `json:"favorite_count"`
	UniqueViewers int64 `json:"unique_viewers"`
}

type contactView struct {
	Phone     string `json:"phone,omitempty"`
	WhatsApp  string `json:"whatsapp,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

type itemDetailView struct {
	itemView
	Stats       *itemStatsView `json:"stats,omitempty"`
	IsFavorited bool           `json:"is_favorited"`
	Contact     contactView    `json:"contact"`
}

type dashboardStatsView struct {
	TotalItems     int `json:"total_items"`
	AvailableItems int `json:"available_items"`
	ClaimedItems   int `json:"claimed_items"`
}

type dashboardView struct {
	Items []itemView         `json:"items"`
	Stats dashboardStatsView `json:"stats"`
}

type userStatsView struct {
	TotalItems     int64 `json:"total_items"`
	AvailableItems int64 `json:"available_items"`
	ClaimedItems   int64 `json:"claimed_items"`
	TotalViews     int64 `json:"total_views"`
	TotalFavorites int64 `json:"total_favorites"`
}

func toUserView(user *entity.User) userView {
	view := userView{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
	if user.Profile != nil {
		view.Profile = &profileView{
			Bio:                user.Profile.Bio,
			Location:           user.Profile.Location,
			AvatarURL:          user.Profile.AvatarURL,
			Phone:              user.Profile.Phone,
			WhatsApp:           user.Profile.WhatsApp,
			Instagram:          user.Profile.Instagram,
			ContactPreferences: user.Profile.ContactPreferences,
		}
	}

	return view
}

func toItemView(item *entity.Item) itemView {
	view := itemView{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		ImageURL:    item.ImageURL,
		Category:    item.Category,
		Condition:   item.Condition,
		Location:    item.Location,
		IsAvailable: item.IsAvailable,
		CreatedAt:   item.CreatedAt,
	}
	if item.Owner != nil {
		owner := &itemOwnerView{
			ID:   item.Owner.ID,
			Name: item.Owner.Name,
		}
		if item.Owner.Profile != nil {
			owner.AvatarURL = item.Owner.Profile.AvatarURL
		}
		view.Owner = owner
	}

	return view
}

func toItemViews(items []*entity.Item) []itemView {
	views := make([]itemView, 0, len(items))
	for _, item := range items {
		views = append(views, toItemView(item))
	}

	return views
}

func toRankedItemViews(items []*entity.RankedItem) []rankedItemView {
	views := make([]rankedItemView, 0, len(items))
	for _, item := range items {
		views = append(views, rankedItemView{
			itemView: toItemView(&item.Item),
			Rank:     item.Rank,
		})
	}

	return views
}

func toItemDetailView(detail *usecase.ItemDetailOutput) itemDetailView {
	view := itemDetailView{
		itemView:    toItemView(detail.Item),
		IsFavorited: detail.IsFavorited,
		Contact: contactView{
			Phone:     detail.Contact.Phone,
			WhatsApp:  detail.Contact.WhatsApp,
			Instagram: detail.Contact.Instagram,
		},
	}
	if detail.Stats != nil {
		view.Stats = &itemStatsView{
			ViewCount:     detail.Stats.ViewCount,
			FavoriteCount: detail.Stats.FavoriteCount,
			UniqueViewers: detail.Stats.UniqueViewers,
		}
	}

	return view
}
