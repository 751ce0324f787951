package impl

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"opencycle/config"
	deliverycontext "opencycle/internal/delivery/context"
	"opencycle/internal/domain/entity"
	domainerrors "opencycle/internal/domain/errors"
	"opencycle/internal/domain/repository"
	"opencycle/internal/domain/service"
	"opencycle/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultMaxItemImageBytes = 5 << 20
	defaultSearchLimit       = 20
	maxSearchLimit           = 100
)

// itemService implements the ItemUsecase interface.
type itemService struct {
	itemRepo          repository.ItemRepository
	favoriteRepo      repository.FavoriteRepository
	itemViewRepo      repository.ItemViewRepository
	storage           service.ObjectStorage
	qrcodeService     service.QRCodeService
	maxItemImageBytes int64
	logger            *slog.Logger
}

// ItemServiceParams holds dependencies for ItemService, injected by Fx.
type ItemServiceParams struct {
	fx.In

	ItemRepo      repository.ItemRepository
	FavoriteRepo  repository.FavoriteRepository
	ItemViewRepo  repository.ItemViewRepository
	Storage       service.ObjectStorage
	QRCodeService service.QRCodeService
	Config        *config.Config
	Logger        *slog.Logger
}

// NewItemService is the constructor for itemService.
func NewItemService(params ItemServiceParams) usecase.ItemUsecase {
	maxItemImageBytes := int64(defaultMaxItemImageBytes)
	if params.Config != nil && params.Config.Storage != nil && params.Config.Storage.MaxItemImageBytes > 0 {
		maxItemImageBytes = params.Config.Storage.MaxItemImageBytes
	}

	return &itemService{
		itemRepo:          params.ItemRepo,
		favoriteRepo:      params.FavoriteRepo,
		itemViewRepo:      params.ItemViewRepo,
		storage:           params.Storage,
		qrcodeService:     params.QRCodeService,
		maxItemImageBytes: maxItemImageBytes,
		logger:            params.Logger,
	}
}

func (srv *itemService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListAvailable returns the browsable feed. A storage failure degrades to an
// empty feed instead of an error page.
func (srv *itemService) ListAvailable(ctx context.Context, filter entity.ItemFilter) ([]*entity.Item, error) {
	items, err := srv.itemRepo.ListAvailable(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list available items, serving empty feed", slog.Any("error", err))

		return []*entity.Item{}, nil
	}

	return entity.FilterItems(items, filter), nil
}

// ListMine returns all of the owner's items, available and claimed.
func (srv *itemService) ListMine(ctx context.Context, ownerID uuid.UUID) ([]*entity.Item, error) {
	items, err := srv.itemRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list own items")
	}

	return items, nil
}

// Get assembles the item detail for a viewer. A missing item is reported as
// such; stats degrade to nil rather than failing the whole page.
func (srv *itemService) Get(ctx context.Context, itemID uuid.UUID, viewerID *uuid.UUID) (*usecase.ItemDetailOutput, error) {
	item, err := srv.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, errors.Wrap(domainerrors.ErrItemNotFound, "item lookup")
		}

		return nil, errors.Wrap(err, "failed to load item")
	}

	output := &usecase.ItemDetailOutput{
		Item:    item,
		Stats:   srv.Stats(ctx, itemID),
		Contact: entity.VisibleContacts(viewerID, item),
	}

	if viewerID != nil {
		_, favErr := srv.favoriteRepo.Find(ctx, *viewerID, itemID)
		switch {
		case favErr == nil:
			output.IsFavorited = true
		case errors.Is(favErr, repository.ErrFavoriteNotFound):
			output.IsFavorited = false
		default:
			srv.log(ctx).Warn("Failed to load favorite state", slog.Any("error", favErr))
		}
	}

	return output, nil
}

// Create stores the optional image first and persists the listing only after
// the upload succeeded, so a storage failure never leaves an item row with a
// dead image URL.
func (srv *itemService) Create(ctx context.Context, ownerID uuid.UUID, input usecase.CreateItemInput) (*entity.Item, error) {
	if input.Title == "" || input.Description == "" || input.Category == "" || input.Location == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "title, description, category and location are required")
	}

	if !input.Condition.Valid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown condition")
	}

	var imageURL string
	if input.Image != nil {
		url, err := srv.uploadItemImage(ctx, ownerID, input.Image)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	item := &entity.Item{
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    imageURL,
		Category:    input.Category,
		Condition:   input.Condition,
		Location:    input.Location,
		IsAvailable: true, // New listings are always available.
		UserID:      ownerID,
	}

	if err := srv.itemRepo.Create(ctx, item); err != nil {
		return nil, errors.Wrap(err, "failed to create item")
	}

	srv.log(ctx).Info("Item created", slog.Any("itemID", item.ID), slog.Any("ownerID", ownerID))

	return item, nil
}

func (srv *itemService) uploadItemImage(ctx context.Context, ownerID uuid.UUID, upload *usecase.FileUpload) (string, error) {
	if err := validateImageUpload(upload, srv.maxItemImageBytes); err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/%d%s", ownerID, time.Now().UnixMilli(), fileExt(upload.Filename))
	if err := srv.storage.Upload(ctx, service.BucketItemImages, key, upload.ContentType, upload.Data); err != nil {
		srv.log(ctx).Error("Item image upload failed", slog.Any("error", err))

		return "", errors.Wrap(domainerrors.ErrUploadFailed, "item image upload")
	}

	return srv.storage.PublicURL(service.BucketItemImages, key), nil
}

// SetAvailability marks the owner's item as available or claimed.
func (srv *itemService) SetAvailability(ctx context.Context, itemID, ownerID uuid.UUID, available bool) error {
	if err := srv.itemRepo.UpdateAvailability(ctx, itemID, ownerID, available); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return errors.Wrap(domainerrors.ErrItemNotFound, "availability update")
		}

		return errors.Wrap(err, "failed to update availability")
	}

	return nil
}

// Delete permanently removes the owner's item.
func (srv *itemService) Delete(ctx context.Context, itemID, ownerID uuid.UUID) error {
	if err := srv.itemRepo.Delete(ctx, itemID, ownerID); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return errors.Wrap(domainerrors.ErrItemNotFound, "item delete")
		}

		return errors.Wrap(err, "failed to delete item")
	}

	srv.log(ctx).Info("Item deleted", slog.Any("itemID", itemID), slog.Any("ownerID", ownerID))

	return nil
}

// ToggleFavorite flips the favorite state. Losing the insert race to a
// concurrent toggle counts as success: the end state is favorited either way.
func (srv *itemService) ToggleFavorite(ctx context.Context, userID, itemID uuid.UUID) (bool, error) {
	_, err := srv.favoriteRepo.Find(ctx, userID, itemID)
	if err == nil {
		if delErr := srv.favoriteRepo.Delete(ctx, userID, itemID); delErr != nil {
			if errors.Is(delErr, repository.ErrFavoriteNotFound) {
				// Someone else already removed it.
				return false, nil
			}

			return false, errors.Wrap(delErr, "failed to remove favorite")
		}

		return false, nil
	}
	if !errors.Is(err, repository.ErrFavoriteNotFound) {
		return false, errors.Wrap(err, "failed to check favorite state")
	}

	createErr := srv.favoriteRepo.Create(ctx, &entity.Favorite{UserID: userID, ItemID: itemID})
	if createErr != nil {
		if errors.Is(createErr, repository.ErrDuplicateFavorite) {
			return true, nil
		}
		if errors.Is(createErr, repository.ErrItemNotFound) {
			return false, errors.Wrap(domainerrors.ErrItemNotFound, "favorite toggle")
		}

		return false, errors.Wrap(createErr, "failed to add favorite")
	}

	return true, nil
}

// RecordView appends a page-visit record. Failures are logged and swallowed;
// analytics must never break the item page.
func (srv *itemService) RecordView(ctx context.Context, itemID uuid.UUID, viewerID *uuid.UUID, userAgent string) {
	view := &entity.ItemView{
		ItemID:    itemID,
		UserID:    viewerID,
		UserAgent: userAgent,
	}

	if err := srv.itemViewRepo.Create(ctx, view); err != nil {
		srv.log(ctx).Warn("Failed to record item view", slog.Any("itemID", itemID), slog.Any("error", err))
	}
}

// Stats returns engagement counters, or nil when they cannot be computed.
func (srv *itemService) Stats(ctx context.Context, itemID uuid.UUID) *entity.ItemStats {
	stats, err := srv.itemRepo.Stats(ctx, itemID)
	if err != nil {
		srv.log(ctx).Warn("Failed to compute item stats", slog.Any("itemID", itemID), slog.Any("error", err))

		return nil
	}

	return stats
}

// Search runs relevance-ranked full-text search over available items.
func (srv *itemService) Search(ctx context.Context, input usecase.SearchItemsInput) ([]*entity.RankedItem, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return []*entity.RankedItem{}, nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	ranked, err := srv.itemRepo.Search(ctx, query, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search items")
	}

	return ranked, nil
}

// ShareQR renders a QR code PNG linking to the item's public page.
func (srv *itemService) ShareQR(ctx context.Context, itemID uuid.UUID) ([]byte, error) {
	if _, err := srv.itemRepo.FindByID(ctx, itemID); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, errors.Wrap(domainerrors.ErrItemNotFound, "share QR")
		}

		return nil, errors.Wrap(err, "failed to load item for QR")
	}

	png, err := srv.qrcodeService.GenerateItemShareQR(itemID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate share QR")
	}

	return png, nil
}

// validateImageUpload enforces the client-side contract server-side: images
// only, within the size limit.
func validateImageUpload(upload *usecase.FileUpload, maxBytes int64) error {
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return errors.Wrap(domainerrors.ErrUnsupportedFileType, upload.ContentType)
	}

	size := upload.Size
	if size == 0 {
		size = int64(len(upload.Data))
	}
	if size > maxBytes {
		return errors.Wrapf(domainerrors.ErrFileTooLarge, "%d bytes", size)
	}

	return nil
}

// fileExt returns the lower-cased extension including the dot, defaulting to
// .jpg when the filename carries none.
func fileExt(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		return ".jpg"
	}

	return ext
}
