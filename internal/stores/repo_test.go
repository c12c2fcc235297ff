package stores

import (
	"context"
	"math"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/localmart/localmart-backend/pkg/config"
	"github.com/localmart/localmart-backend/pkg/db/models"
	"github.com/localmart/localmart-backend/pkg/types"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv(config.EnvDBDSN)
	if dsn == "" {
		t.Skipf("%s is not set", config.EnvDBDSN)
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return conn
}

type repoFixture struct {
	tx   *gorm.DB
	repo Repository
}

func newRepoFixture(t *testing.T) *repoFixture {
	t.Helper()

	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})
	return &repoFixture{tx: tx, repo: NewRepository(tx)}
}

func (f *repoFixture) mustCreateStore(t *testing.T, name string, lat, lng float64) *models.Store {
	t.Helper()
	store := &models.Store{
		ID:           uuid.New(),
		Name:         name,
		BusinessType: "hardware",
		Address:      "1 Test Way",
		Phone:        "555-0100",
		Location:     types.GeographyPoint{Latitude: lat, Longitude: lng},
	}
	if err := f.tx.Create(store).Error; err != nil {
		t.Fatalf("create store: %v", err)
	}
	return store
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// Store reads select the geography column, so these tests exercise the full
// write-then-read round trip against a real PostGIS wire encoding.
func TestRepositoryFindByIDRoundTripsLocation(t *testing.T) {
	f := newRepoFixture(t)
	ctx := context.Background()

	created := f.mustCreateStore(t, "Round Trip Hardware", 40.7600, -73.9235)

	got, err := f.repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if got.ID != created.ID || got.Name != created.Name {
		t.Fatalf("unexpected store %+v", got)
	}
	if !closeTo(got.Location.Latitude, 40.7600) || !closeTo(got.Location.Longitude, -73.9235) {
		t.Fatalf("location did not round trip: %+v", got.Location)
	}
}

func TestRepositoryListReturnsLocations(t *testing.T) {
	f := newRepoFixture(t)
	ctx := context.Background()

	f.mustCreateStore(t, "List Hardware A", 40.7600, -73.9235)
	f.mustCreateStore(t, "List Hardware B", 40.7650, -73.9200)

	rows, _, err := f.repo.List(ctx, 50, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) < 2 {
		t.Fatalf("expected at least 2 stores, got %d", len(rows))
	}
	for _, row := range rows {
		if row.Location.Latitude == 0 && row.Location.Longitude == 0 {
			t.Fatalf("store %s has zero location", row.ID)
		}
	}
}

func TestRepositoryListInStockInventory(t *testing.T) {
	f := newRepoFixture(t)
	ctx := context.Background()

	store := f.mustCreateStore(t, "Inventory Hardware", 40.7600, -73.9235)
	category := &models.Category{ID: uuid.New(), Name: "tools_" + uuid.NewString()[:8]}
	if err := f.tx.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	hammer := &models.Item{ID: uuid.New(), Name: "Claw hammer", Description: "16oz", CategoryID: category.ID}
	wrench := &models.Item{ID: uuid.New(), Name: "Pipe wrench", Description: "14in", CategoryID: category.ID}
	for _, item := range []*models.Item{hammer, wrench} {
		if err := f.tx.Create(item).Error; err != nil {
			t.Fatalf("create item: %v", err)
		}
	}
	stock := []*models.StoreInventory{
		{StoreID: store.ID, ItemID: hammer.ID, Quantity: 4, Price: decimal.RequireFromString("18.99")},
		{StoreID: store.ID, ItemID: wrench.ID, Quantity: 0, Price: decimal.RequireFromString("24.50")},
	}
	for _, row := range stock {
		if err := f.tx.Create(row).Error; err != nil {
			t.Fatalf("create inventory: %v", err)
		}
	}

	lines, err := f.repo.ListInStockInventory(ctx, store.ID)
	if err != nil {
		t.Fatalf("list inventory: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected only the in-stock line, got %d", len(lines))
	}
	if lines[0].ItemID != hammer.ID || lines[0].Category != category.Name {
		t.Fatalf("unexpected inventory line %+v", lines[0])
	}
}
