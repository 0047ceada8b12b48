package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/filtercore/pricing-backend/api/responses"
	"github.com/filtercore/pricing-backend/api/validators"
	"github.com/filtercore/pricing-backend/internal/deals"
	"github.com/filtercore/pricing-backend/pkg/db/models"
	pkgerrors "github.com/filtercore/pricing-backend/pkg/errors"
	"github.com/filtercore/pricing-backend/pkg/logger"
)

// DealRewardPayload is one bonus SKU granted by a deal.
type DealRewardPayload struct {
	SKU           string           `json:"sku" validate:"required"`
	Quantity      int              `json:"quantity" validate:"required,min=1"`
	PriceOverride *decimal.Decimal `json:"price_override"`
}

// DealPayload is the admin create/update body for an order-level deal.
type DealPayload struct {
	Description   string              `json:"description" validate:"required"`
	StartPrice    decimal.Decimal     `json:"start_price"`
	EndPrice      decimal.Decimal     `json:"end_price"`
	Units         int                 `json:"units"`
	RewardAutoAdd *bool               `json:"reward_auto_add"`
	Active        *bool               `json:"active"`
	ValidFrom     *time.Time          `json:"valid_from"`
	ValidTo       *time.Time          `json:"valid_to"`
	Rewards       []DealRewardPayload `json:"rewards" validate:"dive"`
}

func (p DealPayload) check() error {
	if p.StartPrice.IsNegative() || p.EndPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "deal price band must not be negative")
	}
	if p.EndPrice.LessThan(p.StartPrice) {
		return pkgerrors.New(pkgerrors.CodeValidation, "deal end price must not precede start price")
	}
	if p.ValidFrom != nil && p.ValidTo != nil && p.ValidTo.Before(*p.ValidFrom) {
		return pkgerrors.New(pkgerrors.CodeValidation, "deal validity window is inverted")
	}
	return nil
}

func (p DealPayload) toModel() models.Deal {
	out := models.Deal{
		Description:   p.Description,
		StartPrice:    p.StartPrice,
		EndPrice:      p.EndPrice,
		Units:         p.Units,
		RewardAutoAdd: true,
		Active:        true,
		ValidFrom:     p.ValidFrom,
		ValidTo:       p.ValidTo,
	}
	if out.Units <= 0 {
		out.Units = 1
	}
	if p.RewardAutoAdd != nil {
		out.RewardAutoAdd = *p.RewardAutoAdd
	}
	if p.Active != nil {
		out.Active = *p.Active
	}
	for _, reward := range p.Rewards {
		out.Rewards = append(out.Rewards, models.DealReward{
			SKU:           strings.TrimSpace(reward.SKU),
			Quantity:      reward.Quantity,
			PriceOverride: reward.PriceOverride,
		})
	}
	return out
}

func AdminDealCreate(repo deals.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "deal repository unavailable"))
			return
		}

		var payload DealPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := payload.check(); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deal := payload.toModel()
		created, err := repo.Create(r.Context(), &deal)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create deal"))
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AdminDealUpdate(repo deals.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseInt64Param(r, "dealId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload DealPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := payload.check(); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := getDeal(r, repo, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deal := payload.toModel()
		deal.ID = id
		updated, err := repo.Update(r.Context(), &deal)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update deal"))
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func AdminDealList(repo deals.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := repo.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list deals"))
			return
		}
		responses.WriteSuccess(w, out)
	}
}

func AdminDealGet(repo deals.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseInt64Param(r, "dealId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deal, err := getDeal(r, repo, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, deal)
	}
}

func AdminDealDelete(repo deals.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseInt64Param(r, "dealId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := getDeal(r, repo, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := repo.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete deal"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// DealApplicable returns the single deal matching the supplied subtotal.
func DealApplicable(repo deals.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.URL.Query().Get("subtotal"))
		if raw == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "subtotal query parameter is required"))
			return
		}
		subtotal, err := decimal.NewFromString(raw)
		if err != nil || subtotal.IsNegative() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "subtotal must be a non-negative number"))
			return
		}

		deal, err := repo.FindApplicable(r.Context(), subtotal)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find applicable deal"))
			return
		}
		responses.WriteSuccess(w, map[string]any{"deal": deal})
	}
}

func getDeal(r *http.Request, repo deals.Repository, id int64) (*models.Deal, error) {
	deal, err := repo.GetByID(r.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "deal not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load deal")
	}
	return deal, nil
}
