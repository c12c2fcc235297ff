package items

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/localmart/localmart-backend/pkg/config"
	"github.com/localmart/localmart-backend/pkg/db"
	"github.com/localmart/localmart-backend/pkg/db/models"
	pkgerrors "github.com/localmart/localmart-backend/pkg/errors"
	"github.com/localmart/localmart-backend/pkg/logger"
	"github.com/localmart/localmart-backend/pkg/types"
)

func openTestClient(t *testing.T) *db.Client {
	t.Helper()

	dsn := os.Getenv(config.EnvDBDSN)
	if dsn == "" {
		t.Skipf("%s is not set", config.EnvDBDSN)
	}

	logg := logger.New(logger.Options{Level: zerolog.ErrorLevel})
	client, err := db.New(context.Background(), config.DBConfig{DSN: dsn}, logg)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func cleanupItem(t *testing.T, client *db.Client, itemID uuid.UUID) {
	t.Helper()
	conn := client.DB()
	_ = conn.Exec("DELETE FROM store_inventory WHERE item_id = ?", itemID).Error
	_ = conn.Exec("DELETE FROM items WHERE id = ?", itemID).Error
}

func TestCreateItemTransactionalFlow(t *testing.T) {
	client := openTestClient(t)
	ctx := context.Background()

	store := &models.Store{
		Name:         "Item Flow Store",
		BusinessType: "hardware",
		Address:      "1 Flow St",
		Phone:        "555-0101",
		Location:     types.GeographyPoint{Latitude: 40.76, Longitude: -73.9235},
	}
	if err := client.DB().Create(store).Error; err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() {
		_ = client.DB().Exec("DELETE FROM stores WHERE id = ?", store.ID).Error
	})

	svc, err := NewService(NewRepository(client.DB()), client)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	categoryName := "flow_test_" + uuid.NewString()[:8]
	dto, err := svc.CreateItem(ctx, CreateItemInput{
		Name:        "Flow test cable " + uuid.NewString()[:8],
		Description: "integration fixture",
		Synonyms:    []string{"flowcbl"},
		Category:    categoryName,
		Stock: []StockInput{
			{StoreID: store.ID, Quantity: 4, Price: decimal.RequireFromString("3.25")},
		},
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	t.Cleanup(func() {
		cleanupItem(t, client, dto.ID)
		_ = client.DB().Exec("DELETE FROM categories WHERE id = ?", dto.CategoryID).Error
	})

	if dto.Category != categoryName {
		t.Fatalf("expected category %q, got %q", categoryName, dto.Category)
	}

	var count int64
	if err := client.DB().Model(&models.StoreInventory{}).Where("item_id = ?", dto.ID).Count(&count).Error; err != nil {
		t.Fatalf("count inventory: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 inventory row, got %d", count)
	}

	// Re-using the category must not create a duplicate.
	second, err := svc.CreateItem(ctx, CreateItemInput{
		Name:     "Flow test adapter " + uuid.NewString()[:8],
		Category: categoryName,
	})
	if err != nil {
		t.Fatalf("create second item: %v", err)
	}
	t.Cleanup(func() {
		cleanupItem(t, client, second.ID)
	})
	if second.CategoryID != dto.CategoryID {
		t.Fatalf("expected category re-use, got %s and %s", dto.CategoryID, second.CategoryID)
	}
}

func TestCreateItemRollsBackOnBadStore(t *testing.T) {
	client := openTestClient(t)
	ctx := context.Background()

	svc, err := NewService(NewRepository(client.DB()), client)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	name := "Rollback cable " + uuid.NewString()[:8]
	categoryName := "rollback_test_" + uuid.NewString()[:8]
	_, err = svc.CreateItem(ctx, CreateItemInput{
		Name:     name,
		Category: categoryName,
		Stock: []StockInput{
			// FK violation: store does not exist.
			{StoreID: uuid.New(), Quantity: 1, Price: decimal.RequireFromString("1.00")},
		},
	})
	if err == nil {
		t.Fatal("expected error for unknown store")
	}
	if typed := pkgerrors.As(err); typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}

	var count int64
	if err := client.DB().Model(&models.Item{}).Where("name = ?", name).Count(&count).Error; err != nil {
		t.Fatalf("count items: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback to remove item, found %d rows", count)
	}
	t.Cleanup(func() {
		_ = client.DB().Exec("DELETE FROM categories WHERE name = ?", categoryName).Error
	})
}

func TestEnsureCategoryToleratesExisting(t *testing.T) {
	client := openTestClient(t)
	ctx := context.Background()
	repo := NewRepository(client.DB())

	name := "garden_" + uuid.NewString()[:8]
	first, err := repo.EnsureCategory(ctx, name)
	if err != nil {
		t.Fatalf("ensure category: %v", err)
	}
	t.Cleanup(func() {
		_ = client.DB().Exec("DELETE FROM categories WHERE id = ?", first.ID).Error
	})

	// A second caller, any casing, gets the same row back instead of an error.
	second, err := repo.EnsureCategory(ctx, strings.ToUpper(name))
	if err != nil {
		t.Fatalf("ensure existing category: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected the first writer's row, got %s and %s", first.ID, second.ID)
	}
	if second.Name != first.Name {
		t.Fatalf("expected the first writer's casing, got %q", second.Name)
	}
}
