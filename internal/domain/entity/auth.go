package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProviderTypeEmail identifies the email/password credential provider.
const ProviderTypeEmail = "email"

// Authentication represents a single login credential for a user. Today only
// email/password exists, but the provider split keeps room for social logins.
type Authentication struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Provider       string // The credential provider, e.g. "email".
	ProviderUserID string // The provider-specific identifier; the email address for the email provider.
	PasswordHash   string // bcrypt hash, only set for the email provider.
	CreatedAt      time.Time
}

// RefreshToken represents a long-lived, authorized session. It is exchanged
// for a new access token without requiring credentials again.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string // SHA-256 hash of the raw token; the raw value never touches the database.
	ExpiresAt time.Time
	CreatedAt time.Time
}
