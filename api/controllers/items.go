package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/localmart/localmart-backend/api/responses"
	"github.com/localmart/localmart-backend/api/validators"
	"github.com/localmart/localmart-backend/internal/items"
	pkgerrors "github.com/localmart/localmart-backend/pkg/errors"
	"github.com/localmart/localmart-backend/pkg/logger"
)

type itemStockRequest struct {
	StoreID  uuid.UUID       `json:"store_id" validate:"required"`
	Quantity int             `json:"quantity" validate:"min=0"`
	Price    decimal.Decimal `json:"price" validate:"required"`
}

type createItemRequest struct {
	Name        string             `json:"name" validate:"required,min=1"`
	Description string             `json:"description"`
	Synonyms    []string           `json:"synonyms"`
	Category    string             `json:"category" validate:"required,min=1"`
	Stock       []itemStockRequest `json:"stock"`
}

func (r createItemRequest) toInput() items.CreateItemInput {
	input := items.CreateItemInput{
		Name:        r.Name,
		Description: r.Description,
		Synonyms:    r.Synonyms,
		Category:    r.Category,
	}
	for _, stock := range r.Stock {
		input.Stock = append(input.Stock, items.StockInput{
			StoreID:  stock.StoreID,
			Quantity: stock.Quantity,
			Price:    stock.Price,
		})
	}
	return input
}

// ItemCreate creates an item with its category and per-store stock in one
// transaction.
func ItemCreate(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "item service unavailable"))
			return
		}

		var req createItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.CreateItem(ctx, req.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}
