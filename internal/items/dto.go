package items

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockInput is one per-store inventory row created with the item.
type StockInput struct {
	StoreID  uuid.UUID
	Quantity int
	Price    decimal.Decimal
}

// CreateItemInput holds the validated payload to create an item with stock.
type CreateItemInput struct {
	Name        string
	Description string
	Synonyms    []string
	Category    string
	Stock       []StockInput
}

// ItemDTO exposes the created item in API responses.
type ItemDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Synonyms    []string  `json:"synonyms"`
	Category    string    `json:"category"`
	CategoryID  uuid.UUID `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
}
