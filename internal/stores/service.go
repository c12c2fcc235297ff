package stores

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/localmart/localmart-backend/pkg/db/models"
	pkgerrors "github.com/localmart/localmart-backend/pkg/errors"
	"github.com/localmart/localmart-backend/pkg/pagination"
)

// Service exposes store reference-data reads.
type Service interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	GetInventory(ctx context.Context, storeID uuid.UUID) (*StoreInventoryDTO, error)
}

type service struct {
	repo Repository
}

// NewService constructs a store service instance.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	var cursor *pagination.Cursor
	if params.Pagination.Cursor != "" {
		parsed, err := pagination.ParseCursor(params.Pagination.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		cursor = parsed
	}

	rows, next, err := s.repo.List(ctx, params.Pagination.Limit, cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list stores")
	}

	result := &ListResult{Stores: make([]StoreDTO, 0, len(rows))}
	for _, row := range rows {
		result.Stores = append(result.Stores, toStoreDTO(&row))
	}
	if next != nil {
		result.Cursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

func (s *service) GetInventory(ctx context.Context, storeID uuid.UUID) (*StoreInventoryDTO, error) {
	if storeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id required")
	}

	store, err := s.repo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load store")
	}

	lines, err := s.repo.ListInStockInventory(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load store inventory")
	}
	if lines == nil {
		lines = []InventoryLine{}
	}

	return &StoreInventoryDTO{
		Store:     toStoreDTO(store),
		Inventory: lines,
	}, nil
}

func toStoreDTO(store *models.Store) StoreDTO {
	return StoreDTO{
		ID:           store.ID,
		Name:         store.Name,
		BusinessType: store.BusinessType,
		Address:      store.Address,
		Phone:        store.Phone,
		Latitude:     store.Location.Latitude,
		Longitude:    store.Location.Longitude,
		CreatedAt:    store.CreatedAt,
	}
}
