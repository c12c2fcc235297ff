package search

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SearchInput holds the validated inputs for a proximity inventory search.
type SearchInput struct {
	Query     string
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

// InventoryEntry is one matching in-stock inventory row for a store.
type InventoryEntry struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// StoreResult is one store within the search radius carrying its matching
// inventory. Distance is geodesic meters from the search origin.
type StoreResult struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	BusinessType string           `json:"business_type"`
	Address      string           `json:"address"`
	Phone        string           `json:"phone"`
	Longitude    float64          `json:"longitude"`
	Latitude     float64          `json:"latitude"`
	Distance     float64          `json:"distance"`
	Inventory    []InventoryEntry `json:"inventory"`
}
