// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"opencycle/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific sentinel errors for user persistence.
var (
	// ErrUserNotFound is returned when a user identity is not found.
	ErrUserNotFound = errors.New("user not found")

	// ErrProfileNotFound is returned when the user exists but has no profile
	// row yet. Callers use this to trigger lazy profile creation; it must
	// never be conflated with a transport failure.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrDuplicateProfile is returned when a profile insert loses a race with
	// a concurrent insert for the same user. Callers treat it as benign and
	// refetch.
	ErrDuplicateProfile = errors.New("profile already exists")
)

// UserRepository defines the standard operations for user and profile persistence.
type UserRepository interface {
	// FindByID retrieves a user by their unique ID, preloading the profile when present.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user identity.
	Create(ctx context.Context, user *entity.User) error

	// FindProfile retrieves the profile row for a user, or ErrProfileNotFound.
	FindProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)

	// CreateProfile inserts a profile row. A concurrent duplicate insert
	// surfaces as ErrDuplicateProfile.
	CreateProfile(ctx context.Context, profile *entity.Profile) error

	// UpdateProfile saves the full profile row and refreshes its UpdatedAt.
	UpdateProfile(ctx context.Context, profile *entity.Profile) error

	// UpdateName updates the display name on the identity row.
	UpdateName(ctx context.Context, userID uuid.UUID, name string) error
}
