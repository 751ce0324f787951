package impl

import (
	"context"
	"io"
	"log/slog"
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

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// itemServiceFixtures holds all test dependencies for item service tests.
type itemServiceFixtures struct {
	service       usecase.ItemUsecase
	itemRepo      *mockRepo.MockItemRepository
	favoriteRepo  *mockRepo.MockFavoriteRepository
	itemViewRepo  *mockRepo.MockItemViewRepository
	storage       *mockSvc.MockObjectStorage
	qrcodeService *mockSvc.MockQRCodeService
}

func createTestItemService(t *testing.T) itemServiceFixtures {
	itemRepo := mockRepo.NewMockItemRepository(t)
	favoriteRepo := mockRepo.NewMockFavoriteRepository(t)
	itemViewRepo := mockRepo.NewMockItemViewRepository(t)
	storage := mockSvc.NewMockObjectStorage(t)
	qrcodeService := mockSvc.NewMockQRCodeService(t)

	svc := NewItemService(ItemServiceParams{
		ItemRepo:      itemRepo,
		FavoriteRepo:  favoriteRepo,
		ItemViewRepo:  itemViewRepo,
		Storage:       storage,
		QRCodeService: qrcodeService,
		Config:        &config.Config{},
		Logger:        discardLogger(),
	})

	return itemServiceFixtures{
		service:       svc,
		itemRepo:      itemRepo,
		favoriteRepo:  favoriteRepo,
		itemViewRepo:  itemViewRepo,
		storage:       storage,
		qrcodeService: qrcodeService,
	}
}

func availableItem(owner uuid.UUID, title string) *entity.Item {
	return &entity.Item{
		ID:          uuid.New(),
		Title:       title,
		Description: "some description",
		Category:    "Books",
		Condition:   entity.ConditionGood,
		IsAvailable: true,
		UserID:      owner,
	}
}

func TestItemService_ListAvailable_FailureServesEmptyFeed(t *testing.T) {
	fx := createTestItemService(t)
	ctx := context.Background()

	fx.itemRepo.On("ListAvailable", ctx).
		Return(nil, errors.New("connection refused"))

	items, err := fx.service.ListAvailable(ctx, entity.ItemFilter{})
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestItemService_ListAvailable_KeepsNewestFirstOrder(t *testing.T) {
	fx := createTestItemService(t)
	ctx := context.Background()
	owner := uuid.New()

	now := time.Now()
	newest := availableItem(owner, "Standing desk")
	newest.CreatedAt = now
	middle := availableItem(owner, "Office chair")
	middle.CreatedAt = now.Add(-time.Hour)
	oldest := availableItem(owner, "Monitor arm")
	oldest.CreatedAt = now.Add(-2 * time.Hour)

	// The repository returns rows ordered by creation time descending;
	// filtering must not reorder them.
	fx.itemRepo.On("ListAvailable", ctx).
		Return([]*entity.Item{newest, middle, oldest}, nil)

	items, err := fx.service.ListAvailable(ctx, entity.ItemFilter{})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, newest.ID, items[0].ID)
	assert.Equal(t, middle.ID, items[1].ID)
	assert.Equal(t, oldest.ID, items[2].ID)
}

func TestItemService_ListAvailable_AppliesFilter(t *testing.T) {
	fx := createTestItemService(t)
	ctx := context.Background()
	owner := uuid.New()

	bike := availableItem(owner, "City bike")
	lamp := availableItem(owner, "Desk lamp")

	fx.itemRepo.On("ListAvailable", ctx).
		Return([]*entity.Item{bike, lamp}, nil)

	items, err := fx.service.ListAvailable(ctx, entity.ItemFilter{Term: "bike"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, bike.ID, items[0].ID)
}

func TestItemService_Create_ForcesAvailable(t *testing.T) {
	fx := createTestItemService(t)
	ctx := context.Background()
	owner := uuid.New()

	fx.itemRepo.On("Create", ctx, mock.AnythingOfType("*entity.Item")).
		Run(func(args mock.Arguments) {
			item := args.Get(1).(*entity.Item)
			assert.True(t, item.IsAvailable)
			item.ID = uuid.New()
		}).
		Return(nil)

	item, err := fx.service.Create(ctx, owner, usecase.CreateItemInput{
		Title:       "Old armchair",
		Description: "Comfy but worn",
		Category:    "Furniture",
		Condition:   entity.ConditionFair,
		Location:    "Riverside",
	})
	require.NoError(t, err)
	assert.True(t, item.IsAvailable)
	assert.Equal(t, owner, item.UserID)
}

func TestItemService_Create_UploadsImageBeforeInsert(t *testing.T) {
	fx := createTestItemService(t)
	ctx := context.Background()
	owner := uuid.New()

	fx.storage.On("Upload", ctx, service.BucketItemImages, mock.AnythingOfType("string"), "image/png", []byte{1, 2, 3}).
		Return(nil)
	fx.storage.On("PublicURL", service.BucketItemImages, mock.AnythingOfType("string")).
		Return("https://cdn.example.com/item-images/key.png")
	fx.itemRepo.On("Create", ctx, mock.AnythingOfType("*entity.Item")).
		Return(nil)

	item, err := fx.service.Create(ctx, owner, usecase.CreateItemInput{
		Title:       "Blender",
		Description: "Works fine",
		Category:    "Kitchen",
		Condition:   entity.ConditionGood,
		Location:    "Old Town",
		Image: &usecase.FileUpload{
			Filename:    "photo.png",
			ContentType: "image/png",
			Data:        []byte{1, 2, 3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/item-images/key.png", item.ImageURL)
}

func TestItemService_Create_AbortsOnUploadFailure(t *testing.T) {
	fx := createTestItemService(t)
	ctx := context.Background()

	fx.storage.On("Upload", ctx, service.BucketItemImages, mock.AnythingOfType("string"), "image/jpeg", mock.Anything).
		Return(errors.New("bucket unreachable"))

	// No itemRepo.Create expectation: a failed upload must not create a row.
	_, err := fx.service.Create(ctx, uuid.New(), usecase.CreateItemInput{
		Title:       "Camera",
		Description: "With lens",
		Category:    "Electronics",
		Condition:   entity.ConditionLikeNew,
		Location:    "Harbor",
		Image: &usecase.FileUpload{
			Filename:    "cam.jpg",
			ContentType: "image/jpeg",
			Data:        []byte{9},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUploadFailed)
}

func TestItemService_Create_RejectsNonImage(t *testing.T) {
	fx := createTestItemService(t)

	_, err := fx.service.Create(context.Background(), uuid.New(), usecase.CreateItemInput{
		Title:       "Manual",
		Description: "PDF scan",
		Category:    "Books",
		Condition:   entity.ConditionGood,
		Location:    "Midtown",
		Image: &usecase.FileUpload{
			Filename:    "manual.pdf",
			ContentType: "application/pdf",
			Data:        []byte{1},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUnsupportedFileType)
}

func TestItemService_Create_RejectsOversizeImage(t *testing.T) {
	fx := createTestItemService(t)

	_, err := fx.service.Create(context.Background(), uuid.New(), usecase.CreateItemInput{
		Title:       "Poster",
		Description: "Large scan",
		Category:    "Other",
		Condition:   entity.ConditionNew,
		Location:    "Westgate",
		Image: &usecase.FileUpload{
			Filename:    "poster.png",
			ContentType: "image/png",
			Size:        6 << 20,
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrFileTooLarge)
}

func TestItemService_Create_RejectsUnknownCondition(t *testing.T) {
	fx := createTestItemService(t)

	_, err := fx.service.Create(context.Background(), uuid.New(), usecase.CreateItemInput{
		Title:       "Mystery box",
		Description: "Contents unknown",
		Category:    "Other",
		Condition:   entity.Condition("mint"),
		Location:    "Northside",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestItemService_Create_RejectsMissingRequiredFields(t *testing.T) {
	base := usecase.CreateItemInput{
		Title:       "Desk lamp",
		Description: "Bright and sturdy",
		Category:    "Furniture",
		Condition:   entity.ConditionGood,
		Location:    "East End",
	}

	cases := []struct {
		name  string
		blank func(input *usecase.CreateItemInput)
	}{
		{"title", func(input *usecase.CreateItemInput) { input.Title = "" }},
		{"description", func(input *usecase.CreateItemInput) { input.Description = "" }},
		{"category", func(input *usecase.CreateItemInput) { input.Category = "" }},
		{"location", func(input *usecase.CreateItemInput) { input.Location = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fx := createTestItemService(t)

			input := base
			tc.blank(&input)

			// No itemRepo.Create expectation: invalid input must never reach the store.
			_, err := fx.service.Create(context.Background(), uuid.New(), input)
			require.Error(t, err)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
			fx.itemRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestItemService_ToggleFavorite_Adds(t *testing.T) {
	fx := createTestItemService(t)
	ctx := context.Background()
	userID := uuid.New()
	itemID := uuid.New()

	fx.favoriteRepo.On("Find", ctx, userID, itemID).
		Return(nil, repository.ErrFavoriteNotFound)
	fx.favoriteRepo.On("Create", ctx, mock.AnythingOfType("*entity.Favorite")).
		Return(nil)

	favorited, err := fx.service.ToggleFavorite(ctx, userID, itemID)
	require.NoError(t, err)
	assert.True(t, favorited)
}

func TestItemService_ToggleFavorite_Removes(t *testing.T) {
	fx := createTestItemService(t)
	ctx := context.Background()
	userID := uuid.New()
	itemID := uuid.New()

	fx.favoriteRepo.On("Find", ctx, userID, itemID).
		Return(&entity.Favorite{ID: uuid.New(), UserID: userID, ItemID: itemID}, nil)
	fx.favoriteRepo.On("Delete", ctx, userID, itemID).
		Return(nil)

	favorited, err := fx.service.ToggleFavorite(ctx, userID, itemID)
	require.NoError(t, err)
	assert.False(t, favorited)
}

func TestItemService_ToggleFavorite_InsertRaceCountsAsFavorited(t *testing.T) {
	fx := createTestItemService(t)
	ctx := context.Background()
	userID := uuid.New()
	itemID := uuid.New()

	fx.favoriteRepo.On("Find", ctx, userID, itemID).
		Return(nil, repository.ErrFavoriteNotFound)
	fx.favoriteRepo.On("Create", ctx, mock.AnythingOfType("*entity.Favorite")).
		Return(repository.ErrDuplicateFavorite)

	favorited, err := fx.service.ToggleFavorite(ctx, userID, itemID)
	require.NoError(t, err)
	assert.True(t, favorited)
}

func TestItemService_RecordView_SwallowsFailure(t *testing.T) {
	fx := createTestItemService(t)
	ctx := context.Background()
	itemID := uuid.New()

	fx.itemViewRepo.On("Create", ctx, mock.AnythingOfType("*entity.ItemView")).
		Return(errors.New("insert failed"))

	// Must not panic or surface the error.
	fx.service.RecordView(ctx, itemID, nil, "test-agent")
}

func TestItemService_Stats_FailureReturnsNil(t *testing.T) {
	fx := createTestItemService(t)
	ctx := context.Background()
	itemID := uuid.New()

	fx.itemRepo.On("Stats", ctx, itemID).
		Return(nil, errors.New("aggregate failed"))

	stats := fx.service.Stats(ctx, itemID)
	assert.Nil(t, stats)
}

func TestItemService_Get_NotFound(t *testing.T) {
	fx := createTestItemService(t)
	ctx := context.Background()
	itemID := uuid.New()

	fx.itemRepo.On("FindByID", ctx, itemID).
		Return(nil, repository.ErrItemNotFound)

	_, err := fx.service.Get(ctx, itemID, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrItemNotFound)
}

func TestItemService_Get_OwnerContactVisibleToOtherViewer(t *testing.T) {
	fx := createTestItemService(t)
	ctx := context.Background()
	ownerID := uuid.New()
	viewerID := uuid.New()

	item := availableItem(ownerID, "Bookshelf")
	item.Owner = &entity.User{
		ID: ownerID,
		Profile: &entity.Profile{
			UserID:             ownerID,
			Phone:              "+12025550123",
			Instagram:          "shelf_owner",
			ContactPreferences: entity.ContactPreferences{ShowPhone: true, ShowInstagram: false},
		},
	}

	fx.itemRepo.On("FindByID", ctx, item.ID).
		Return(item, nil)
	fx.itemRepo.On("Stats", ctx, item.ID).
		Return(&entity.ItemStats{ViewCount: 3}, nil)
	fx.favoriteRepo.On("Find", ctx, viewerID, item.ID).
		Return(nil, repository.ErrFavoriteNotFound)

	detail, err := fx.service.Get(ctx, item.ID, &viewerID)
	require.NoError(t, err)
	assert.Equal(t, "+12025550123", detail.Contact.Phone)
	assert.Empty(t, detail.Contact.Instagram)
	assert.False(t, detail.IsFavorited)
	require.NotNil(t, detail.Stats)
	assert.Equal(t, int64(3), detail.Stats.ViewCount)
}

func TestItemService_Get_NoContactForAnonymousViewer(t *testing.T) {
	fx := createTestItemService(t)
	ctx := context.Background()
	ownerID := uuid.New()

	item := availableItem(ownerID, "Winter coat")
	item.Owner = &entity.User{
		ID: ownerID,
		Profile: &entity.Profile{
			UserID:             ownerID,
			Phone:              "+12025550123",
			ContactPreferences: entity.DefaultContactPreferences(),
		},
	}

	fx.itemRepo.On("FindByID", ctx, item.ID).
		Return(item, nil)
	fx.itemRepo.On("Stats", ctx, item.ID).
		Return(&entity.ItemStats{}, nil)

	detail, err := fx.service.Get(ctx, item.ID, nil)
	require.NoError(t, err)
	assert.True(t, detail.Contact.Empty())
}

func TestItemService_Search_EmptyQueryShortCircuits(t *testing.T) {
	fx := createTestItemService(t)

	ranked, err := fx.service.Search(context.Background(), usecase.SearchItemsInput{Query: "   "})
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestItemService_Search_DefaultsLimit(t *testing.T) {
	fx := createTestItemService(t)
	ctx := context.Background()

	fx.itemRepo.On("Search", ctx, "bike", defaultSearchLimit, 0).
		Return([]*entity.RankedItem{}, nil)

	_, err := fx.service.Search(ctx, usecase.SearchItemsInput{Query: "bike"})
	require.NoError(t, err)
}

func TestItemService_ShareQR(t *testing.T) {
	fx := createTestItemService(t)
	ctx := context.Background()
	itemID := uuid.New()

	fx.itemRepo.On("FindByID", ctx, itemID).
		Return(availableItem(uuid.New(), "Skates"), nil)
	fx.qrcodeService.On("GenerateItemShareQR", itemID).
		Return([]byte{0x89, 0x50}, nil)

	png, err := fx.service.ShareQR(ctx, itemID)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestItemService_SetAvailability_NotOwned(t *testing.T) {
	fx := createTestItemService(t)
	ctx := context.Background()
	itemID := uuid.New()
	ownerID := uuid.New()

	fx.itemRepo.On("UpdateAvailability", ctx, itemID, ownerID, false).
		Return(repository.ErrItemNotFound)

	err := fx.service.SetAvailability(ctx, itemID, ownerID, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrItemNotFound)
}
