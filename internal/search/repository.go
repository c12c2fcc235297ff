package search

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/google/uuid"

	"github.com/localmart/localmart-backend/internal/repo"
)

// One query per search: text match, radius predicate, join, and aggregation
// all happen server-side. The ORDER BY inside json_agg keeps inventory output
// stable for a given store.
const proximityQuery = `
SELECT s.id,
       s.name,
       s.business_type,
       s.address,
       s.phone,
       ST_X(s.location::geometry) AS longitude,
       ST_Y(s.location::geometry) AS latitude,
       ST_Distance(s.location, ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography) AS distance,
       json_agg(json_build_object(
           'id', i.id,
           'name', i.name,
           'category', c.name,
           'quantity', si.quantity,
           'price', si.price
       ) ORDER BY i.name, i.id) AS inventory
FROM items i
JOIN store_inventory si ON si.item_id = i.id
JOIN stores s ON s.id = si.store_id
JOIN categories c ON c.id = i.category_id
WHERE (i.name ILIKE ?
       OR i.description ILIKE ?
       OR EXISTS (SELECT 1 FROM unnest(i.synonyms) syn WHERE lower(syn) = lower(?)))
  AND si.quantity > 0
  AND ST_DWithin(s.location, ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography, ?)
GROUP BY s.id
ORDER BY distance ASC, s.id ASC
LIMIT 10
`

// Repository runs the proximity inventory query against Postgres/PostGIS.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

type storeRow struct {
	ID           uuid.UUID
	Name         string
	BusinessType string
	Address      string
	Phone        string
	Longitude    float64
	Latitude     float64
	Distance     float64
	Inventory    []byte
}

// FindNearbyInventory returns up to 10 stores within the radius that stock an
// item matching the query, nearest first.
func (r *Repository) FindNearbyInventory(ctx context.Context, input SearchInput) ([]StoreResult, error) {
	pattern := "%" + input.Query + "%"
	radiusMeters := input.RadiusKm * 1000

	var rows []storeRow
	err := r.DB(ctx).Raw(proximityQuery,
		input.Longitude, input.Latitude,
		pattern, pattern, input.Query,
		input.Longitude, input.Latitude, radiusMeters,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]StoreResult, 0, len(rows))
	for _, row := range rows {
		var inventory []InventoryEntry
		if len(row.Inventory) > 0 {
			if err := json.Unmarshal(row.Inventory, &inventory); err != nil {
				return nil, fmt.Errorf("decode inventory for store %s: %w", row.ID, err)
			}
		}
		results = append(results, StoreResult{
			ID:           row.ID,
			Name:         row.Name,
			BusinessType: row.BusinessType,
			Address:      row.Address,
			Phone:        row.Phone,
			Longitude:    row.Longitude,
			Latitude:     row.Latitude,
			Distance:     row.Distance,
			Inventory:    inventory,
		})
	}
	return results, nil
}
