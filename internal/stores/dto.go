package stores

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/localmart/localmart-backend/pkg/pagination"
)

// StoreDTO exposes store reference data in API responses.
type StoreDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	BusinessType string    `json:"business_type"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	CreatedAt    time.Time `json:"created_at"`
}

// ListParams captures pagination inputs for the store listing.
type ListParams struct {
	Pagination pagination.Params
}

// ListResult is one page of stores plus the cursor for the next page.
type ListResult struct {
	Stores []StoreDTO `json:"stores"`
	Cursor string     `json:"cursor,omitempty"`
}

// InventoryLine is one in-stock item carried by a store.
type InventoryLine struct {
	ItemID   uuid.UUID       `json:"item_id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// StoreInventoryDTO is a store joined with its full in-stock inventory.
type StoreInventoryDTO struct {
	Store     StoreDTO        `json:"store"`
	Inventory []InventoryLine `json:"inventory"`
}
