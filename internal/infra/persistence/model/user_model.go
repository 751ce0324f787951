package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email     string    `gorm:"type:varchar(255);unique;not null"`
	Name      string    `gorm:"type:varchar(100)"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Profile         *ProfileModel         `gorm:"foreignKey:UserID"`
	Authentications []AuthenticationModel `gorm:"foreignKey:UserID"`
	RefreshTokens   []RefreshTokenModel   `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// ProfileModel mirrors the 'profiles' table. UserID references users.id (UUID).
// A row appears lazily the first time the user opens their profile.
type ProfileModel struct {
	UserID             uuid.UUID      `gorm:"primaryKey;type:uuid"`
	Bio                string         `gorm:"type:text"`
	Location           string         `gorm:"type:varchar(255)"`
	AvatarURL          string         `gorm:"type:text"`
	Phone              string         `gorm:"type:varchar(50)"`
	WhatsApp           string         `gorm:"column:whatsapp;type:varchar(50)"`
	Instagram          string         `gorm:"type:varchar(100)"`
	ContactPreferences datatypes.JSON `gorm:"type:jsonb;not null;default:'{\"show_phone\": true, \"show_whatsapp\": true, \"show_instagram\": true}'"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "profiles"
}
