package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/filtercore/pricing-backend/api/responses"
	"github.com/filtercore/pricing-backend/api/validators"
	"github.com/filtercore/pricing-backend/internal/tierpricing"
	"github.com/filtercore/pricing-backend/pkg/db/models"
	"github.com/filtercore/pricing-backend/pkg/enums"
	pkgerrors "github.com/filtercore/pricing-backend/pkg/errors"
	"github.com/filtercore/pricing-backend/pkg/logger"
)

// TierBandPayload is one quantity band in an admin tier table body.
type TierBandPayload struct {
	MinQuantity        int              `json:"min_quantity" validate:"min=0"`
	MaxQuantity        *int             `json:"max_quantity"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage"`
	DiscountAmount     *decimal.Decimal `json:"discount_amount"`
	FixedPrice         *decimal.Decimal `json:"fixed_price"`
}

// TierPricingPayload is the admin create/update body for a tier table.
type TierPricingPayload struct {
	Name      string            `json:"name" validate:"required"`
	ProductID *uuid.UUID        `json:"product_id"`
	SKU       *string           `json:"sku"`
	Category  *string           `json:"category"`
	IsActive  *bool             `json:"is_active"`
	Tiers     []TierBandPayload `json:"tiers" validate:"required,min=1,dive"`
}

func (p TierPricingPayload) toModel() models.TierPricing {
	out := models.TierPricing{
		Name:      p.Name,
		ProductID: p.ProductID,
		SKU:       p.SKU,
		IsActive:  true,
	}
	if p.IsActive != nil {
		out.IsActive = *p.IsActive
	}
	if p.Category != nil {
		category := enums.ProductType(*p.Category)
		out.Category = &category
	}
	for _, tier := range p.Tiers {
		out.Tiers = append(out.Tiers, models.Tier{
			MinQuantity:        tier.MinQuantity,
			MaxQuantity:        tier.MaxQuantity,
			DiscountPercentage: tier.DiscountPercentage,
			DiscountAmount:     tier.DiscountAmount,
			FixedPrice:         tier.FixedPrice,
		})
	}
	return out
}

func AdminTierPricingCreate(svc tierpricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tier pricing service unavailable"))
			return
		}

		var payload TierPricingPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), payload.toModel())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AdminTierPricingUpdate(svc tierpricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "tierPricingId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload TierPricingPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		table := payload.toModel()
		table.ID = id
		updated, err := svc.Update(r.Context(), table)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func AdminTierPricingList(svc tierpricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tables, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tables)
	}
}

func AdminTierPricingGet(svc tierpricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "tierPricingId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		table, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, table)
	}
}

func AdminTierPricingDelete(svc tierpricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "tierPricingId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
