package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/localmart/localmart-backend/api/responses"
	"github.com/localmart/localmart-backend/api/validators"
	"github.com/localmart/localmart-backend/internal/delivery"
	pkgerrors "github.com/localmart/localmart-backend/pkg/errors"
	"github.com/localmart/localmart-backend/pkg/logger"
)

type deliveryQuoteRequest struct {
	StoreID        uuid.UUID `json:"storeId" validate:"required"`
	DropoffAddress string    `json:"dropoffAddress" validate:"required,min=1"`
}

// DeliveryQuote prices a delivery from the store to the geocoded dropoff.
func DeliveryQuote(svc delivery.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "delivery service unavailable"))
			return
		}

		var req deliveryQuoteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		quote, err := svc.Quote(ctx, delivery.QuoteInput{
			StoreID:        req.StoreID,
			DropoffAddress: req.DropoffAddress,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}
