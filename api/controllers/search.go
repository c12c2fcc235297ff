package controllers

import (
	"net/http"

	"github.com/localmart/localmart-backend/api/responses"
	"github.com/localmart/localmart-backend/api/validators"
	"github.com/localmart/localmart-backend/internal/geocoding"
	"github.com/localmart/localmart-backend/internal/search"
	pkgerrors "github.com/localmart/localmart-backend/pkg/errors"
	"github.com/localmart/localmart-backend/pkg/logger"
)

const (
	defaultSearchRadiusKm = 1
	maxItemNameLen        = 200
	maxAddressLen         = 500
	loggedAddressLen      = 80
)

type searchRequest struct {
	ItemName    string  `json:"itemName" validate:"required,min=1"`
	UserAddress string  `json:"userAddress" validate:"required,min=1"`
	Radius      float64 `json:"radius" validate:"omitempty,gt=0"`
}

// Search geocodes the caller's address and returns nearby stores stocking a
// matching item, nearest first. The response body is a bare JSON array.
func Search(svc search.Service, geocoder geocoding.Geocoder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil || geocoder == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "search service unavailable"))
			return
		}

		var req searchRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		req.ItemName = validators.SanitizeString(req.ItemName, maxItemNameLen)
		req.UserAddress = validators.SanitizeString(req.UserAddress, maxAddressLen)
		if req.Radius == 0 {
			req.Radius = defaultSearchRadiusKm
		}

		// Attach the request context before any downstream call so
		// geocode and search failures carry it in the error log.
		if logg != nil {
			ctx = logg.WithFields(ctx, map[string]any{
				"query":     req.ItemName,
				"radius_km": req.Radius,
				"address":   validators.SanitizeString(req.UserAddress, loggedAddressLen),
			})
		}

		origin, err := geocoder.Geocode(ctx, req.UserAddress)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		results, err := svc.Search(ctx, search.SearchInput{
			Query:     req.ItemName,
			Latitude:  origin.Latitude,
			Longitude: origin.Longitude,
			RadiusKm:  req.Radius,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, results)
	}
}
