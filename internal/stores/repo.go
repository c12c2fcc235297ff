package stores

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/localmart/localmart-backend/internal/repo"
	"github.com/localmart/localmart-backend/pkg/db/models"
	"github.com/localmart/localmart-backend/pkg/pagination"
)

const inventoryQuery = `
SELECT i.id AS item_id,
       i.name,
       c.name AS category,
       si.quantity,
       si.price
FROM store_inventory si
JOIN items i ON i.id = si.item_id
JOIN categories c ON c.id = i.category_id
WHERE si.store_id = ? AND si.quantity > 0
ORDER BY i.name, i.id
`

// Repository exposes store reference-data persistence.
type Repository interface {
	List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Store, *pagination.Cursor, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	ListInStockInventory(ctx context.Context, storeID uuid.UUID) ([]InventoryLine, error)
}

type repositoryImpl struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{Base: repo.NewBase(db)}
}

func (r *repositoryImpl) List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Store, *pagination.Cursor, error) {
	normalized := pagination.NormalizeLimit(limit)
	query := r.DB(ctx).Model(&models.Store{})
	if cursor != nil {
		query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Store
	if err := query.Order("created_at ASC, id ASC").Limit(pagination.LimitWithBuffer(limit)).Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	if len(rows) > normalized {
		next := rows[normalized]
		rows = rows[:normalized]
		return rows, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return rows, nil, nil
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.DB(ctx).First(&store, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *repositoryImpl) ListInStockInventory(ctx context.Context, storeID uuid.UUID) ([]InventoryLine, error) {
	var lines []InventoryLine
	if err := r.DB(ctx).Raw(inventoryQuery, storeID).Scan(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}
