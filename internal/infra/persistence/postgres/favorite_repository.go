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

// favoriteRepository implements the repository.FavoriteRepository interface.
type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository is the constructor for favoriteRepository.
func NewFavoriteRepository(db *gorm.DB) repository.FavoriteRepository {
	return &favoriteRepository{
		db: db,
	}
}

// Find retrieves the favorite for the (user, item) pair.
func (repo *favoriteRepository) Find(ctx context.Context, userID, itemID uuid.UUID) (*entity.Favorite, error) {
	var favoriteM model.FavoriteModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		First(&favoriteM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrFavoriteNotFound
		}

		return nil, errors.Wrap(err, "failed to find favorite")
	}

	return toFavoriteDomain(&favoriteM), nil
}

// Create inserts a favorite row. A conflict on the composite unique index
// surfaces as ErrDuplicateFavorite so the caller can treat it as already done.
func (repo *favoriteRepository) Create(ctx context.Context, favorite *entity.Favorite) error {
	favoriteM := fromFavoriteDomain(favorite)

	if err := repo.db.WithContext(ctx).Create(favoriteM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateFavorite
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrItemNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create favorite")
	}

	favorite.ID = favoriteM.ID
	favorite.CreatedAt = favoriteM.CreatedAt

	return nil
}

// Delete removes the favorite for the (user, item) pair.
func (repo *favoriteRepository) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Delete(&model.FavoriteModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete favorite")
	}

	if result.RowsAffected == 0 {
		return repository.ErrFavoriteNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toFavoriteDomain(data *model.FavoriteModel) *entity.Favorite {
	if data == nil {
		return nil
	}

	return &entity.Favorite{
		ID:        data.ID,
		UserID:    data.UserID,
		ItemID:    data.ItemID,
		CreatedAt: data.CreatedAt,
	}
}

func fromFavoriteDomain(data *entity.Favorite) *model.FavoriteModel {
	if data == nil {
		return nil
	}

	return &model.FavoriteModel{
		ID:     data.ID,
		UserID: data.UserID,
		ItemID: data.ItemID,
	}
}
