package repository

import (
	"context"
	"errors"

	"opencycle/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for authentication persistence.
var (
	// ErrAuthNotFound is returned when an authentication method is not found.
	ErrAuthNotFound = errors.New("authentication method not found")

	// ErrRefreshTokenNotFound is returned when a refresh token is not found.
	ErrRefreshTokenNotFound = errors.New("refresh token not found")

	// ErrRefreshTokenExpired is returned when a refresh token exists but has expired.
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

// AuthRepository defines the standard operations for credential persistence.
type AuthRepository interface {
	// CreateAuthentication persists a new authentication method.
	CreateAuthentication(ctx context.Context, auth *entity.Authentication) error

	// FindAuthentication retrieves an authentication method by provider and
	// provider-specific ID.
	FindAuthentication(ctx context.Context, provider, providerUserID string) (*entity.Authentication, error)
}

// RefreshTokenRepository manages persisted sessions.
type RefreshTokenRepository interface {
	// CreateRefreshToken persists a new refresh token, representing a session.
	CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error

	// FindRefreshTokenByHash retrieves a refresh token by its stored hash.
	// Expired tokens surface as ErrRefreshTokenExpired.
	FindRefreshTokenByHash(ctx context.Context, hash string) (*entity.RefreshToken, error)

	// DeleteRefreshTokenByHash deletes a refresh token, ending the session.
	DeleteRefreshTokenByHash(ctx context.Context, hash string) error

	// FindRefreshTokensByUser lists a user's sessions, oldest first.
	FindRefreshTokensByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RefreshToken, error)

	// DeleteRefreshTokenByID removes a single session row.
	DeleteRefreshTokenByID(ctx context.Context, id uuid.UUID) error
}
