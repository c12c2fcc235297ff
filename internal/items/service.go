package items

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/localmart/localmart-backend/pkg/db"
	"github.com/localmart/localmart-backend/pkg/db/models"
	pkgerrors "github.com/localmart/localmart-backend/pkg/errors"
)

// Service exposes inventory-management operations.
type Service interface {
	CreateItem(ctx context.Context, input CreateItemInput) (*ItemDTO, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs an item service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("item repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// CreateItem ensures the category, inserts the item with its synonyms, and
// inserts every per-store inventory row in a single transaction. Any failure
// rolls back the whole batch.
func (s *service) CreateItem(ctx context.Context, input CreateItemInput) (*ItemDTO, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	var dto *ItemDTO
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		category, err := txRepo.EnsureCategory(ctx, input.Category)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: ensure category")
		}

		item := &models.Item{
			Name:        input.Name,
			Description: input.Description,
			Synonyms:    pq.StringArray(input.Synonyms),
			CategoryID:  category.ID,
		}
		created, err := txRepo.CreateItem(ctx, item)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert item")
		}

		for _, stock := range input.Stock {
			row := &models.StoreInventory{
				StoreID:  stock.StoreID,
				ItemID:   created.ID,
				Quantity: stock.Quantity,
				Price:    stock.Price,
			}
			if err := txRepo.CreateInventory(ctx, row); err != nil {
				if db.IsUniqueViolation(err, "store_inventory_pkey") {
					return pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("duplicate inventory row for store %s", stock.StoreID))
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert inventory")
			}
		}

		dto = &ItemDTO{
			ID:          created.ID,
			Name:        created.Name,
			Description: created.Description,
			Synonyms:    []string(created.Synonyms),
			Category:    category.Name,
			CategoryID:  category.ID,
			CreatedAt:   created.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func validateInput(input *CreateItemInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}
	input.Category = strings.TrimSpace(input.Category)
	if input.Category == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}

	cleaned := make([]string, 0, len(input.Synonyms))
	for _, syn := range input.Synonyms {
		syn = strings.TrimSpace(syn)
		if syn != "" {
			cleaned = append(cleaned, syn)
		}
	}
	input.Synonyms = cleaned

	seen := make(map[uuid.UUID]struct{}, len(input.Stock))
	for _, stock := range input.Stock {
		if stock.StoreID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "stock store id is required")
		}
		if _, dup := seen[stock.StoreID]; dup {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("store %s listed twice", stock.StoreID))
		}
		seen[stock.StoreID] = struct{}{}
		if stock.Quantity < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "stock quantity cannot be negative")
		}
		if stock.Price.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "stock price cannot be negative")
		}
	}
	return nil
}
