package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StoreInventory is the per-store stock record for an item. Rows with zero
// quantity are never eligible for search results.
type StoreInventory struct {
	StoreID   uuid.UUID       `gorm:"column:store_id;type:uuid;primaryKey"`
	ItemID    uuid.UUID       `gorm:"column:item_id;type:uuid;primaryKey"`
	Quantity  int             `gorm:"column:quantity;not null;default:0"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the singular table name used by the schema.
func (StoreInventory) TableName() string {
	return "store_inventory"
}
