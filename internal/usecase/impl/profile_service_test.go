package impl

import (
	"context"
	"testing"

	"opencycle/config"
	"opencycle/internal/domain/entity"
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

// profileServiceFixtures holds all test dependencies for profile service tests.
type profileServiceFixtures struct {
	service  usecase.ProfileUsecase
	userRepo *mockRepo.MockUserRepository
	itemRepo *mockRepo.MockItemRepository
	storage  *mockSvc.MockObjectStorage
}

func createTestProfileService(t *testing.T) profileServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	itemRepo := mockRepo.NewMockItemRepository(t)
	storage := mockSvc.NewMockObjectStorage(t)

	svc := NewProfileService(ProfileServiceParams{
		UserRepo: userRepo,
		ItemRepo: itemRepo,
		Storage:  storage,
		Config:   &config.Config{},
		Logger:   discardLogger(),
	})

	return profileServiceFixtures{
		service:  svc,
		userRepo: userRepo,
		itemRepo: itemRepo,
		storage:  storage,
	}
}

func TestProfileService_GetOrCreate_ExistingProfile(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{
			ID:      userID,
			Profile: &entity.Profile{UserID: userID, Bio: "hello"},
		}, nil)

	user, err := fx.service.GetOrCreate(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, user.Profile)
	assert.Equal(t, "hello", user.Profile.Bio)
	fx.userRepo.AssertNotCalled(t, "CreateProfile", mock.Anything, mock.Anything)
}

func TestProfileService_GetOrCreate_CreatesDefaultProfile(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID}, nil)
	fx.userRepo.On("FindProfile", ctx, userID).
		Return(nil, repository.ErrProfileNotFound)
	fx.userRepo.On("CreateProfile", ctx, mock.MatchedBy(func(p *entity.Profile) bool {
		return p.UserID == userID && p.ContactPreferences == entity.DefaultContactPreferences()
	})).Return(nil)

	user, err := fx.service.GetOrCreate(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, user.Profile)
	assert.Equal(t, entity.DefaultContactPreferences(), user.Profile.ContactPreferences)
}

func TestProfileService_GetOrCreate_LosesInsertRace(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	userID := uuid.New()

	winner := &entity.Profile{UserID: userID, Bio: "created concurrently"}

	fx.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID}, nil)
	fx.userRepo.On("FindProfile", ctx, userID).
		Return(nil, repository.ErrProfileNotFound).Once()
	fx.userRepo.On("CreateProfile", ctx, mock.AnythingOfType("*entity.Profile")).
		Return(repository.ErrDuplicateProfile)
	fx.userRepo.On("FindProfile", ctx, userID).
		Return(winner, nil).Once()

	user, err := fx.service.GetOrCreate(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, user.Profile)
	assert.Equal(t, "created concurrently", user.Profile.Bio)
}

func TestProfileService_Update_SavesFieldsAndName(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	userID := uuid.New()

	existing := &entity.Profile{UserID: userID, ContactPreferences: entity.DefaultContactPreferences()}

	fx.userRepo.On("FindProfile", ctx, userID).
		Return(existing, nil)
	fx.userRepo.On("UpdateProfile", ctx, mock.MatchedBy(func(p *entity.Profile) bool {
		return p.Bio == "plant collector" && p.WhatsApp == "+12025550123" && !p.ContactPreferences.ShowPhone
	})).Return(nil)
	fx.userRepo.On("UpdateName", ctx, userID, "Renamed").
		Return(nil)
	fx.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Name: "Renamed"}, nil)

	user, err := fx.service.Update(ctx, userID, usecase.UpdateProfileInput{
		Name:               "Renamed",
		Bio:                "plant collector",
		WhatsApp:           "+12025550123",
		ContactPreferences: entity.ContactPreferences{ShowPhone: false, ShowWhatsApp: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", user.Name)
	require.NotNil(t, user.Profile)
	assert.Equal(t, "plant collector", user.Profile.Bio)
}

func TestProfileService_Update_AvatarUsesStableKey(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	userID := uuid.New()

	key := userID.String() + "/avatar.png"

	fx.userRepo.On("FindProfile", ctx, userID).
		Return(&entity.Profile{UserID: userID}, nil)
	fx.storage.On("Upload", ctx, service.BucketAvatars, key, "image/png", []byte{7}).
		Return(nil)
	fx.storage.On("PublicURL", service.BucketAvatars, key).
		Return("https://cdn.example.com/avatars/" + key)
	fx.userRepo.On("UpdateProfile", ctx, mock.MatchedBy(func(p *entity.Profile) bool {
		return p.AvatarURL == "https://cdn.example.com/avatars/"+key
	})).Return(nil)
	fx.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID}, nil)

	_, err := fx.service.Update(ctx, userID, usecase.UpdateProfileInput{
		Avatar: &usecase.FileUpload{
			Filename:    "selfie.PNG",
			ContentType: "image/png",
			Data:        []byte{7},
		},
	})
	require.NoError(t, err)
}

func TestProfileService_Dashboard_StatsMatchReturnedItems(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	userID := uuid.New()

	items := []*entity.Item{
		{ID: uuid.New(), UserID: userID, IsAvailable: true},
		{ID: uuid.New(), UserID: userID, IsAvailable: true},
		{ID: uuid.New(), UserID: userID, IsAvailable: false},
	}

	fx.itemRepo.On("ListByOwner", ctx, userID).
		Return(items, nil)

	output, err := fx.service.Dashboard(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, output.Items, 3)
	assert.Equal(t, 3, output.Stats.TotalItems)
	assert.Equal(t, 2, output.Stats.AvailableItems)
	assert.Equal(t, 1, output.Stats.ClaimedItems)
}

func TestProfileService_Stats_FailureReturnsAbsent(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.itemRepo.On("StatsForOwner", ctx, userID).
		Return(nil, errors.New("aggregate failed"))

	stats, err := fx.service.Stats(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, stats)
}
