package impl

import (
	"context"
	"testing"
	"time"

	"opencycle/config"
	"opencycle/internal/domain/entity"
	domainerrors "opencycle/internal/domain/errors"
	"opencycle/internal/domain/repository"
	"opencycle/internal/domain/service"
	mockRepo "opencycle/internal/mocks/repository"
	mockSvc "opencycle/internal/mocks/service"
	"opencycle/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service          usecase.UserUsecase
	userRepo         *mockRepo.MockUserRepository
	authRepo         *mockRepo.MockAuthRepository
	refreshTokenRepo *mockRepo.MockRefreshTokenRepository
	hasher           *mockSvc.MockPasswordHasher
	tokenService     *mockSvc.MockTokenService
}

func createTestUserService(t *testing.T, cfg *config.Config) userServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	authRepo := mockRepo.NewMockAuthRepository(t)
	refreshTokenRepo := mockRepo.NewMockRefreshTokenRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)

	txManager := &mockRepo.StubTransactionManager{
		Factory: &mockRepo.StubRepositoryFactory{
			Users:         userRepo,
			Auths:         authRepo,
			RefreshTokens: refreshTokenRepo,
		},
	}

	if cfg == nil {
		cfg = &config.Config{}
	}

	svc := NewUserService(UserServiceParams{
		TxManager:        txManager,
		UserRepo:         userRepo,
		RefreshTokenRepo: refreshTokenRepo,
		Hasher:           hasher,
		TokenService:     tokenService,
		Config:           cfg,
		Logger:           discardLogger(),
	})

	return userServiceFixtures{
		service:          svc,
		userRepo:         userRepo,
		authRepo:         authRepo,
		refreshTokenRepo: refreshTokenRepo,
		hasher:           hasher,
		tokenService:     tokenService,
	}
}

func expectSession(fx userServiceFixtures, userID uuid.UUID) {
	fx.tokenService.On("GenerateTokens", userID).
		Return("access-token", "refresh-token", nil)
	fx.tokenService.On("HashToken", "refresh-token").
		Return("hashed-refresh-token")
	fx.tokenService.On("RefreshTokenDuration").
		Return(7 * 24 * time.Hour)
	fx.refreshTokenRepo.On("CreateRefreshToken", mock.Anything, mock.AnythingOfType("*entity.RefreshToken")).
		Return(nil)
}

func TestUserService_Register_Success(t *testing.T) {
	fx := createTestUserService(t, nil)
	ctx := context.Background()

	fx.hasher.On("Hash", "hunter2-long").
		Return("bcrypt-hash", nil)
	fx.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, "new@example.com").
		Return(nil, repository.ErrAuthNotFound)
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.User).ID = uuid.New()
		}).
		Return(nil)
	fx.authRepo.On("CreateAuthentication", ctx, mock.MatchedBy(func(auth *entity.Authentication) bool {
		return auth.Provider == entity.ProviderTypeEmail &&
			auth.ProviderUserID == "new@example.com" &&
			auth.PasswordHash == "bcrypt-hash"
	})).Return(nil)

	var sessionUser uuid.UUID
	fx.tokenService.On("GenerateTokens", mock.AnythingOfType("uuid.UUID")).
		Run(func(args mock.Arguments) {
			sessionUser = args.Get(0).(uuid.UUID)
		}).
		Return("access-token", "refresh-token", nil)
	fx.tokenService.On("HashToken", "refresh-token").
		Return("hashed-refresh-token")
	fx.tokenService.On("RefreshTokenDuration").
		Return(7 * 24 * time.Hour)
	fx.refreshTokenRepo.On("CreateRefreshToken", ctx, mock.MatchedBy(func(token *entity.RefreshToken) bool {
		return token.TokenHash == "hashed-refresh-token"
	})).Return(nil)

	output, err := fx.service.Register(ctx, usecase.RegisterInput{
		Name:     "New User",
		Email:    "new@example.com",
		Password: "hunter2-long",
	})
	require.NoError(t, err)
	assert.Equal(t, "access-token", output.AccessToken)
	assert.Equal(t, "refresh-token", output.RefreshToken)
	assert.Equal(t, sessionUser, output.User.ID)
}

func TestUserService_Register_EmailTaken(t *testing.T) {
	fx := createTestUserService(t, nil)
	ctx := context.Background()

	fx.hasher.On("Hash", "some-password").
		Return("bcrypt-hash", nil)
	fx.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, "taken@example.com").
		Return(&entity.Authentication{UserID: uuid.New()}, nil)

	_, err := fx.service.Register(ctx, usecase.RegisterInput{
		Name:     "Dup",
		Email:    "taken@example.com",
		Password: "some-password",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestUserService_Register_PasswordTooShort(t *testing.T) {
	fx := createTestUserService(t, nil)

	_, err := fx.service.Register(context.Background(), usecase.RegisterInput{
		Name:     "Short",
		Email:    "short@example.com",
		Password: "abc",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestUserService_Login_Success(t *testing.T) {
	fx := createTestUserService(t, nil)
	ctx := context.Background()
	userID := uuid.New()

	fx.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, "user@example.com").
		Return(&entity.Authentication{UserID: userID, PasswordHash: "stored-hash"}, nil)
	fx.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Email: "user@example.com"}, nil)
	fx.hasher.On("Check", "correct-password", "stored-hash").
		Return(true)
	expectSession(fx, userID)

	output, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "user@example.com",
		Password: "correct-password",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, output.User.ID)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	fx := createTestUserService(t, nil)
	ctx := context.Background()
	userID := uuid.New()

	fx.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, "user@example.com").
		Return(&entity.Authentication{UserID: userID, PasswordHash: "stored-hash"}, nil)
	fx.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID}, nil)
	fx.hasher.On("Check", "wrong-password", "stored-hash").
		Return(false)

	_, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "user@example.com",
		Password: "wrong-password",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	fx := createTestUserService(t, nil)
	ctx := context.Background()

	fx.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, "ghost@example.com").
		Return(nil, repository.ErrAuthNotFound)

	_, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	require.Error(t, err)
	// Unknown email and wrong password must be indistinguishable.
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_PrunesOldestSessionAtLimit(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{MaxActiveSessions: 2}}
	fx := createTestUserService(t, cfg)
	ctx := context.Background()
	userID := uuid.New()

	oldest := &entity.RefreshToken{ID: uuid.New(), UserID: userID}
	newer := &entity.RefreshToken{ID: uuid.New(), UserID: userID}

	fx.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, "busy@example.com").
		Return(&entity.Authentication{UserID: userID, PasswordHash: "stored-hash"}, nil)
	fx.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID}, nil)
	fx.hasher.On("Check", "correct-password", "stored-hash").
		Return(true)
	fx.tokenService.On("GenerateTokens", userID).
		Return("access-token", "refresh-token", nil)
	fx.tokenService.On("HashToken", "refresh-token").
		Return("hashed-refresh-token")
	fx.tokenService.On("RefreshTokenDuration").
		Return(7 * 24 * time.Hour)

	fx.refreshTokenRepo.On("FindRefreshTokensByUser", ctx, userID).
		Return([]*entity.RefreshToken{oldest, newer}, nil)
	fx.refreshTokenRepo.On("DeleteRefreshTokenByID", ctx, oldest.ID).
		Return(nil)
	fx.refreshTokenRepo.On("CreateRefreshToken", ctx, mock.AnythingOfType("*entity.RefreshToken")).
		Return(nil)

	_, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "busy@example.com",
		Password: "correct-password",
	})
	require.NoError(t, err)
	fx.refreshTokenRepo.AssertNotCalled(t, "DeleteRefreshTokenByID", ctx, newer.ID)
}

func TestUserService_RefreshToken_Success(t *testing.T) {
	fx := createTestUserService(t, nil)
	ctx := context.Background()
	userID := uuid.New()

	fx.tokenService.On("ValidateRefreshToken", "refresh-token").
		Return(&service.Claims{UserID: userID}, nil)
	fx.tokenService.On("HashToken", "refresh-token").
		Return("hashed-refresh-token")
	fx.refreshTokenRepo.On("FindRefreshTokenByHash", ctx, "hashed-refresh-token").
		Return(&entity.RefreshToken{ID: uuid.New(), UserID: userID}, nil)
	fx.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID}, nil)
	fx.tokenService.On("GenerateTokens", userID).
		Return("new-access-token", "unused-refresh", nil)

	output, err := fx.service.RefreshToken(ctx, usecase.RefreshTokenInput{RefreshToken: "refresh-token"})
	require.NoError(t, err)
	assert.Equal(t, "new-access-token", output.AccessToken)
}

func TestUserService_RefreshToken_Revoked(t *testing.T) {
	fx := createTestUserService(t, nil)
	ctx := context.Background()
	userID := uuid.New()

	fx.tokenService.On("ValidateRefreshToken", "refresh-token").
		Return(&service.Claims{UserID: userID}, nil)
	fx.tokenService.On("HashToken", "refresh-token").
		Return("hashed-refresh-token")
	fx.refreshTokenRepo.On("FindRefreshTokenByHash", ctx, "hashed-refresh-token").
		Return(nil, repository.ErrRefreshTokenNotFound)

	_, err := fx.service.RefreshToken(ctx, usecase.RefreshTokenInput{RefreshToken: "refresh-token"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestUserService_RefreshToken_Malformed(t *testing.T) {
	fx := createTestUserService(t, nil)

	fx.tokenService.On("ValidateRefreshToken", "garbage").
		Return(nil, errors.New("token is malformed"))

	_, err := fx.service.RefreshToken(context.Background(), usecase.RefreshTokenInput{RefreshToken: "garbage"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestUserService_Logout_Idempotent(t *testing.T) {
	fx := createTestUserService(t, nil)
	ctx := context.Background()

	fx.tokenService.On("ValidateRefreshToken", "refresh-token").
		Return(&service.Claims{UserID: uuid.New()}, nil)
	fx.tokenService.On("HashToken", "refresh-token").
		Return("hashed-refresh-token")
	fx.refreshTokenRepo.On("DeleteRefreshTokenByHash", ctx, "hashed-refresh-token").
		Return(repository.ErrRefreshTokenNotFound)

	err := fx.service.Logout(ctx, usecase.LogoutInput{RefreshToken: "refresh-token"})
	require.NoError(t, err)
}

func TestUserService_Logout_InvalidTokenStillDeleted(t *testing.T) {
	fx := createTestUserService(t, nil)
	ctx := context.Background()

	fx.tokenService.On("ValidateRefreshToken", "expired-token").
		Return(nil, errors.New("token is expired"))
	fx.tokenService.On("HashToken", "expired-token").
		Return("hashed-expired-token")
	fx.refreshTokenRepo.On("DeleteRefreshTokenByHash", ctx, "hashed-expired-token").
		Return(nil)

	err := fx.service.Logout(ctx, usecase.LogoutInput{RefreshToken: "expired-token"})
	require.NoError(t, err)
}

func TestUserService_CurrentUser_NotFound(t *testing.T) {
	fx := createTestUserService(t, nil)
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.On("FindByID", ctx, userID).
		Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.CurrentUser(ctx, userID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
