package postgres

import (
	"context"

	"opencycle/internal/domain/entity"
	domainerrors "opencycle/internal/domain/errors"
	"opencycle/internal/domain/repository"
	"opencycle/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// itemRepository implements the repository.ItemRepository interface.
type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository is the constructor for itemRepository.
func NewItemRepository(db *gorm.DB) repository.ItemRepository {
	return &itemRepository{
		db: db,
	}
}

// FindByID retrieves a single item with its owner and the owner's profile joined in.
func (repo *itemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	var itemM model.ItemModel

	if err := repo.db.WithContext(ctx).
		Preload("Owner").
		Preload("Owner.Profile").
		Where("id = ?", id).
		First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find item by id")
	}

	return toItemDomain(&itemM), nil
}

// ListAvailable retrieves every available item, newest first, with owners joined.
func (repo *itemRepository) ListAvailable(ctx context.Context) ([]*entity.Item, error) {
	var itemModels []*model.ItemModel

	if err := repo.db.WithContext(ctx).
		Preload("Owner").
		Preload("Owner.Profile").
		Where("is_available = ?", true).
		Order("created_at DESC").
		Find(&itemModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list available items")
	}

	return toItemDomainSlice(itemModels), nil
}

// ListByOwner retrieves all of an owner's items, available and claimed, newest first.
func (repo *itemRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Item, error) {
	var itemModels []*model.ItemModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&itemModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list items by owner")
	}

	return toItemDomainSlice(itemModels), nil
}

// Create persists a new item and fills in the generated ID and timestamps.
func (repo *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	itemM := fromItemDomain(item)

	if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}
		if isNotNullConstraintViolation(err) || isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required item information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create item")
	}

	// Update the entity with generated values
	item.ID = itemM.ID
	item.CreatedAt = itemM.CreatedAt
	item.UpdatedAt = itemM.UpdatedAt

	return nil
}

// UpdateAvailability sets exactly is_available on an item owned by ownerID.
// The owner scope in the WHERE clause is the ownership check; a zero row
// count means the item does not exist or belongs to someone else.
func (repo *itemRepository) UpdateAvailability(ctx context.Context, itemID, ownerID uuid.UUID, available bool) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ItemModel{}).
		Where("id = ? AND user_id = ?", itemID, ownerID).
		Update("is_available", available)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update item availability")
	}

	if result.RowsAffected == 0 {
		return repository.ErrItemNotFound
	}

	return nil
}

// Delete hard-deletes an item owned by ownerID.
func (repo *itemRepository) Delete(ctx context.Context, itemID, ownerID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, ownerID).
		Delete(&model.ItemModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete item")
	}

	if result.RowsAffected == 0 {
		return repository.ErrItemNotFound
	}

	return nil
}

// searchRow is the scan target for the ranked full-text search query.
type searchRow struct {
	model.ItemModel
	Rank float64
}

// Search runs the database full-text search over available items and returns
// rows ordered by relevance. Ranking happens entirely in PostgreSQL.
func (repo *itemRepository) Search(ctx context.Context, query string, limit, offset int) ([]*entity.RankedItem, error) {
	var rows []searchRow

	if err := repo.db.WithContext(ctx).Raw(`
		SELECT i.*, ts_rank(i.search_vector, plainto_tsquery('english', ?)) AS rank
		FROM items i
		WHERE i.is_available = TRUE
		  AND i.search_vector @@ plainto_tsquery('english', ?)
		ORDER BY rank DESC, i.created_at DESC
		LIMIT ? OFFSET ?`,
		query, query, limit, offset,
	).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search items")
	}

	ranked := make([]*entity.RankedItem, 0, len(rows))
	for i := range rows {
		ranked = append(ranked, &entity.RankedItem{
			Item: *toItemDomain(&rows[i].ItemModel),
			Rank: rows[i].Rank,
		})
	}

	return ranked, nil
}

// Stats computes the engagement counters for one item in a single query.
func (repo *itemRepository) Stats(ctx context.Context, itemID uuid.UUID) (*entity.ItemStats, error) {
	var stats entity.ItemStats

	if err := repo.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM item_views v WHERE v.item_id = ?) AS view_count,
			(SELECT COUNT(*) FROM favorites f WHERE f.item_id = ?) AS favorite_count,
			(SELECT COUNT(DISTINCT v.user_id) FROM item_views v WHERE v.item_id = ? AND v.user_id IS NOT NULL) AS unique_viewers`,
		itemID, itemID, itemID,
	).Scan(&stats).Error; err != nil {
		return nil, errors.Wrap(err, "failed to compute item stats")
	}

	return &stats, nil
}

// StatsForOwner aggregates counts across all of a user's items.
func (repo *itemRepository) StatsForOwner(ctx context.Context, ownerID uuid.UUID) (*entity.UserStats, error) {
	var stats entity.UserStats

	if err := repo.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_items,
			COUNT(*) FILTER (WHERE i.is_available) AS available_items,
			COUNT(*) FILTER (WHERE NOT i.is_available) AS claimed_items,
			(SELECT COUNT(*) FROM item_views v JOIN items oi ON oi.id = v.item_id WHERE oi.user_id = ?) AS total_views,
			(SELECT COUNT(*) FROM favorites f JOIN items oi ON oi.id = f.item_id WHERE oi.user_id = ?) AS total_favorites
		FROM items i
		WHERE i.user_id = ?`,
		ownerID, ownerID, ownerID,
	).Scan(&stats).Error; err != nil {
		return nil, errors.Wrap(err, "failed to compute user stats")
	}

	return &stats, nil
}

// --- Mapper Functions ---

// toItemDomain converts a GORM ItemModel to a domain Item entity.
func toItemDomain(data *model.ItemModel) *entity.Item {
	if data == nil {
		return nil
	}

	return &entity.Item{
		ID:          data.ID,
		Title:       data.Title,
		Description: data.Description,
		ImageURL:    data.ImageURL,
		Category:    data.Category,
		Condition:   entity.Condition(data.Condition),
		Location:    data.Location,
		IsAvailable: data.IsAvailable,
		UserID:      data.UserID,
		Owner:       toUserDomain(data.Owner),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromItemDomain converts a domain Item entity to a GORM ItemModel.
func fromItemDomain(data *entity.Item) *model.ItemModel {
	if data == nil {
		return nil
	}

	return &model.ItemModel{
		ID:          data.ID,
		Title:       data.Title,
		Description: data.Description,
		ImageURL:    data.ImageURL,
		Category:    data.Category,
		Condition:   string(data.Condition),
		Location:    data.Location,
		IsAvailable: data.IsAvailable,
		UserID:      data.UserID,
	}
}

func toItemDomainSlice(models []*model.ItemModel) []*entity.Item {
	items := make([]*entity.Item, 0, len(models))
	for _, itemM := range models {
		items = append(items, toItemDomain(itemM))
	}

	return items
}
