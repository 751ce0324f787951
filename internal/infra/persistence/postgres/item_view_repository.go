package postgres

import (
	"context"

	"opencycle/internal/domain/entity"
	domainerrors "opencycle/internal/domain/errors"
	"opencycle/internal/domain/repository"
	"opencycle/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// itemViewRepository implements the repository.ItemViewRepository interface.
// Views are append-only.
type itemViewRepository struct {
	db *gorm.DB
}

// NewItemViewRepository is the constructor for itemViewRepository.
func NewItemViewRepository(db *gorm.DB) repository.ItemViewRepository {
	return &itemViewRepository{
		db: db,
	}
}

// Create appends a page-visit record.
func (repo *itemViewRepository) Create(ctx context.Context, view *entity.ItemView) error {
	viewM := &model.ItemViewModel{
		ItemID:    view.ItemID,
		UserID:    view.UserID,
		UserAgent: view.UserAgent,
	}

	if err := repo.db.WithContext(ctx).Create(viewM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrItemNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to record item view")
	}

	view.ID = viewM.ID
	view.CreatedAt = viewM.CreatedAt

	return nil
}
