package usecase

import (
	"context"

	"opencycle/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// UpdateProfileInput defines the editable profile fields. Avatar is optional;
// when present it replaces the previous avatar under a stable storage key.
type UpdateProfileInput struct {
	Name               string
	Bio                string
	Location           string
	Phone              string
	WhatsApp           string
	Instagram          string
	ContactPreferences entity.ContactPreferences
	Avatar             *FileUpload
}

// --- Output DTOs ---

// DashboardOutput bundles the owner's items with counters derived from that
// same list, so the numbers always agree with what is shown.
type DashboardOutput struct {
	Items []*entity.Item
	Stats entity.DashboardStats
}

// ProfileUsecase defines the interface for profile and dashboard operations.
type ProfileUsecase interface {
	// GetOrCreate loads the user with their profile, creating a default
	// profile row on first access.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// Update saves the profile fields and optional new avatar, returning the
	// refreshed user.
	Update(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*entity.User, error)

	// Dashboard returns the owner's items and their derived counters.
	Dashboard(ctx context.Context, userID uuid.UUID) (*DashboardOutput, error)

	// Stats aggregates lifetime engagement across all of the user's items.
	Stats(ctx context.Context, userID uuid.UUID) (*entity.UserStats, error)
}
