// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity in the system, created at sign-up and shared with
// the auth subsystem. Profile data beyond email and display name lives in the
// lazily created Profile.
type User struct {
	ID        uuid.UUID // The unique identifier for this account, shared with the auth subject.
	Email     string    // The user's primary contact email, also the login identifier.
	Name      string    // The user's display name.
	Profile   *Profile  // The extended profile. Nil until the user first opens their profile page.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile holds the public-facing profile of a user: bio, avatar and the
// contact channels an item owner may expose to interested viewers.
// Exactly one Profile exists per User; it is created lazily on first access.
type Profile struct {
	UserID             uuid.UUID // Foreign key to the owning User; also the primary key.
	Bio                string
	Location           string
	AvatarURL          string
	Phone              string
	WhatsApp           string
	Instagram          string
	ContactPreferences ContactPreferences
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ContactPreferences controls which contact channels are shown to viewers of
// the owner's available items. Each channel is gated independently.
type ContactPreferences struct {
	ShowPhone     bool `json:"show_phone"`
	ShowWhatsApp  bool `json:"show_whatsapp"`
	ShowInstagram bool `json:"show_instagram"`
}

// DefaultContactPreferences returns the preferences applied when a profile is
// created: every channel visible.
func DefaultContactPreferences() ContactPreferences {
	return ContactPreferences{
		ShowPhone:     true,
		ShowWhatsApp:  true,
		ShowInstagram: true,
	}
}
