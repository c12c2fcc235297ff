// Package delivery produces distance-based delivery fee quotes.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/localmart/localmart-backend/internal/geocoding"
	"github.com/localmart/localmart-backend/pkg/config"
	"github.com/localmart/localmart-backend/pkg/db/models"
	pkgerrors "github.com/localmart/localmart-backend/pkg/errors"
	"github.com/localmart/localmart-backend/pkg/geo"
)

// QuoteInput holds the inputs for a delivery fee quote.
type QuoteInput struct {
	StoreID        uuid.UUID
	DropoffAddress string
}

// QuoteDTO is the computed quote returned to the caller.
type QuoteDTO struct {
	StoreID        uuid.UUID       `json:"store_id"`
	DistanceMeters float64         `json:"distance_meters"`
	Fee            decimal.Decimal `json:"fee"`
}

// Service exposes delivery quoting.
type Service interface {
	Quote(ctx context.Context, input QuoteInput) (*QuoteDTO, error)
}

type storeLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

type service struct {
	stores        storeLoader
	geocoder      geocoding.Geocoder
	baseFee       decimal.Decimal
	feePerKm      decimal.Decimal
	maxDistanceKm float64
}

// NewService constructs a delivery quote service from the fee configuration.
func NewService(stores storeLoader, geocoder geocoding.Geocoder, cfg config.DeliveryConfig) (Service, error) {
	if stores == nil {
		return nil, fmt.Errorf("store repository required")
	}
	if geocoder == nil {
		return nil, fmt.Errorf("geocoder required")
	}
	baseFee, err := decimal.NewFromString(cfg.BaseFee)
	if err != nil {
		return nil, fmt.Errorf("invalid base fee %q: %w", cfg.BaseFee, err)
	}
	feePerKm, err := decimal.NewFromString(cfg.FeePerKm)
	if err != nil {
		return nil, fmt.Errorf("invalid per-km fee %q: %w", cfg.FeePerKm, err)
	}
	if cfg.MaxDistanceKm <= 0 {
		return nil, fmt.Errorf("max distance must be positive")
	}
	return &service{
		stores:        stores,
		geocoder:      geocoder,
		baseFee:       baseFee,
		feePerKm:      feePerKm,
		maxDistanceKm: cfg.MaxDistanceKm,
	}, nil
}

// Quote geocodes the dropoff and prices the trip from the store at a flat base
// fee plus a per-km rate, rounded to cents.
func (s *service) Quote(ctx context.Context, input QuoteInput) (*QuoteDTO, error) {
	if input.StoreID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id required")
	}
	if strings.TrimSpace(input.DropoffAddress) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dropoff address required")
	}

	store, err := s.stores.FindByID(ctx, input.StoreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load store")
	}

	dropoff, err := s.geocoder.Geocode(ctx, input.DropoffAddress)
	if err != nil {
		return nil, err
	}

	meters := geo.Haversine(store.Location.Latitude, store.Location.Longitude, dropoff.Latitude, dropoff.Longitude)
	km := meters / 1000
	if km > s.maxDistanceKm {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("dropoff is %.1f km away, beyond the %.0f km delivery range", km, s.maxDistanceKm))
	}

	fee := s.baseFee.Add(s.feePerKm.Mul(decimal.NewFromFloat(km))).Round(2)
	return &QuoteDTO{
		StoreID:        store.ID,
		DistanceMeters: meters,
		Fee:            fee,
	}, nil
}
