package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	pkgerrors "github.com/localmart/localmart-backend/pkg/errors"
	"github.com/localmart/localmart-backend/pkg/geo"
)

const defaultQueryTimeout = 5 * time.Second

// Service exposes the proximity inventory search.
type Service interface {
	Search(ctx context.Context, input SearchInput) ([]StoreResult, error)
}

type repository interface {
	FindNearbyInventory(ctx context.Context, input SearchInput) ([]StoreResult, error)
}

type service struct {
	repo         repository
	queryTimeout time.Duration
}

// NewService constructs the search service.
func NewService(repo repository, queryTimeout time.Duration) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("search repository required")
	}
	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}
	return &service{repo: repo, queryTimeout: queryTimeout}, nil
}

// Search validates the input and runs the single combined query. A store with
// no in-stock matching inventory never appears; no matches at all is an empty
// slice, not an error.
func (s *service) Search(ctx context.Context, input SearchInput) ([]StoreResult, error) {
	input.Query = strings.TrimSpace(input.Query)
	if input.Query == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query is required")
	}
	if !geo.ValidCoordinates(input.Latitude, input.Longitude) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "origin coordinates out of range")
	}
	if input.RadiusKm <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "radius must be positive")
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	results, err := s.repo.FindNearbyInventory(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeSearch, err, "db: proximity inventory query")
	}
	if results == nil {
		results = []StoreResult{}
	}
	return results, nil
}
