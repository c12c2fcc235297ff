package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/localmart/localmart-backend/pkg/types"
)

// Store is a physical business location carrying inventory. Location is fixed
// reference data; distances are always computed against the caller's origin.
type Store struct {
	ID           uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string               `gorm:"column:name;not null"`
	BusinessType string               `gorm:"column:business_type;not null"`
	Address      string               `gorm:"column:address;not null"`
	Phone        string               `gorm:"column:phone;not null;default:''"`
	Location     types.GeographyPoint `gorm:"column:location;type:geography(Point,4326);not null"`
	CreatedAt    time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
