package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Item is a product definition shared across stores. Synonyms hold alternate
// names that match a search query by exact equality, not substring.
type Item struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string         `gorm:"column:name;not null"`
	Description string         `gorm:"column:description;not null;default:''"`
	Synonyms    pq.StringArray `gorm:"column:synonyms;type:text[];not null;default:ARRAY[]::text[]"`
	CategoryID  uuid.UUID      `gorm:"column:category_id;type:uuid;not null"`
	Category    *Category      `gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
