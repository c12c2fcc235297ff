package items

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/localmart/localmart-backend/internal/repo"
	"github.com/localmart/localmart-backend/pkg/db/models"
)

// Repository wires together item and category persistence.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// EnsureCategory returns the category with the given name, creating it when
// absent. Lookup is case-insensitive; the stored name keeps the first writer's
// casing. A writer racing the create loses to ON CONFLICT DO NOTHING and
// re-reads the winner's row, so the surrounding transaction stays usable.
func (r *Repository) EnsureCategory(ctx context.Context, name string) (*models.Category, error) {
	category, err := r.findCategoryByName(ctx, name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := models.Category{Name: strings.TrimSpace(name)}
	result := r.DB(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&created)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return r.findCategoryByName(ctx, name)
	}
	return &created, nil
}

func (r *Repository) findCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := r.DB(ctx).
		Where("lower(name) = lower(?)", name).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateItem inserts the item and returns it with generated fields populated.
func (r *Repository) CreateItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	if err := r.DB(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// CreateInventory inserts one per-store inventory row.
func (r *Repository) CreateInventory(ctx context.Context, row *models.StoreInventory) error {
	return r.DB(ctx).Create(row).Error
}
