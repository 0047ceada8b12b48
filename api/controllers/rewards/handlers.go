package rewards

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/filtercore/pricing-backend/api/responses"
	"github.com/filtercore/pricing-backend/api/validators"
	rewardsvc "github.com/filtercore/pricing-backend/internal/rewards"
	pkgerrors "github.com/filtercore/pricing-backend/pkg/errors"
	"github.com/filtercore/pricing-backend/pkg/logger"
	"github.com/filtercore/pricing-backend/pkg/metrics"
)

// CartItemPayload is one requested cart line.
type CartItemPayload struct {
	ProductID *uuid.UUID       `json:"product_id"`
	SKU       string           `json:"sku"`
	Quantity  int              `json:"quantity" validate:"required,min=1"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// CartRewardsRequest carries the cart snapshot to resolve rewards for.
type CartRewardsRequest struct {
	Items    []CartItemPayload `json:"items" validate:"required,min=1,dive"`
	Subtotal *decimal.Decimal  `json:"subtotal"`
}

func (r CartRewardsRequest) toInput() rewardsvc.ResolveInput {
	items := make([]rewardsvc.CartItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, rewardsvc.CartItem{
			ProductID: item.ProductID,
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return rewardsvc.ResolveInput{Items: items, Subtotal: r.Subtotal}
}

// CartRewards resolves gift-with-purchase and deal rewards for a cart.
func CartRewards(svc rewardsvc.Service, m *metrics.PricingMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rewards service unavailable"))
			return
		}

		start := time.Now()

		var payload CartRewardsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			m.IncFailure("cart_rewards")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Resolve(r.Context(), payload.toInput())
		if err != nil {
			m.IncFailure("cart_rewards")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.ObserveDuration("cart_rewards", time.Since(start))
		m.IncSuccess("cart_rewards")
		m.AddRewardLines(len(result.Rewards))
		responses.WriteSuccess(w, result)
	}
}
