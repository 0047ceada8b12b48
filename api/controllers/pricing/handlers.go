package pricing

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/filtercore/pricing-backend/api/responses"
	"github.com/filtercore/pricing-backend/api/validators"
	"github.com/filtercore/pricing-backend/internal/b2b"
	pricingcore "github.com/filtercore/pricing-backend/internal/pricing"
	"github.com/filtercore/pricing-backend/internal/tierpricing"
	"github.com/filtercore/pricing-backend/pkg/db/models"
	pkgerrors "github.com/filtercore/pricing-backend/pkg/errors"
	"github.com/filtercore/pricing-backend/pkg/logger"
	"github.com/filtercore/pricing-backend/pkg/metrics"
)

// TierQuote computes the tiered price for a single line item.
func TierQuote(tiers tierpricing.Service, m *metrics.PricingMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if tiers == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tier pricing service unavailable"))
			return
		}

		start := time.Now()

		var payload TierQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			m.IncFailure("tier_quote")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := payload.check(); err != nil {
			m.IncFailure("tier_quote")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		table, err := lookupTable(r, tiers, payload.ProductID, payload.SKU)
		if err != nil {
			m.IncFailure("tier_quote")
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tier pricing"))
			return
		}

		result := pricingcore.CalculateTierPrice(payload.BasePrice, payload.Quantity, table)

		m.ObserveDuration("tier_quote", time.Since(start))
		m.IncSuccess("tier_quote")
		responses.WriteSuccess(w, result)
	}
}

// B2BQuote applies the account discount before tier resolution.
func B2BQuote(accounts b2b.Service, quoter *pricingcore.Quoter, m *metrics.PricingMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if accounts == nil || quoter == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		start := time.Now()

		var payload B2BQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			m.IncFailure("b2b_quote")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := payload.check(); err != nil {
			m.IncFailure("b2b_quote")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		account, err := accounts.GetAccount(r.Context(), payload.AccountID)
		if err != nil {
			m.IncFailure("b2b_quote")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithAccountID(ctx, payload.AccountID.String())
		}
		result, err := quoter.CalculateB2BPrice(ctx, payload.BasePrice, payload.Quantity, account, payload.ProductID, payload.SKU)
		if err != nil {
			m.IncFailure("b2b_quote")
			responses.WriteError(ctx, logg, w, err)
			return
		}

		m.ObserveDuration("b2b_quote", time.Since(start))
		m.IncSuccess("b2b_quote")
		responses.WriteSuccess(w, result)
	}
}

// ValidateTiers reports every structural problem in a proposed tier table.
func ValidateTiers(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload ValidateTiersRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, pricingcore.ValidateTiers(payload.toModels()))
	}
}

// CreditCheck runs the order gate for an account and total.
func CreditCheck(accounts b2b.Service, m *metrics.PricingMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if accounts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "account service unavailable"))
			return
		}

		start := time.Now()

		var payload CreditCheckRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			m.IncFailure("credit_check")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		decision, err := accounts.CheckOrder(r.Context(), payload.AccountID, payload.OrderTotal)
		if err != nil {
			m.IncFailure("credit_check")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.ObserveDuration("credit_check", time.Since(start))
		m.IncSuccess("credit_check")
		responses.WriteSuccess(w, decision)
	}
}

// lookupTable resolves the tier table in scope, product id first and SKU as
// the fallback, mirroring the quoting path.
func lookupTable(r *http.Request, tiers tierpricing.Service, productID *uuid.UUID, sku string) (*models.TierPricing, error) {
	if productID != nil && *productID != uuid.Nil {
		table, err := tiers.ByProductID(r.Context(), *productID)
		if err != nil {
			return nil, err
		}
		if table != nil {
			return table, nil
		}
	}
	if sku != "" {
		return tiers.BySKU(r.Context(), sku)
	}
	return nil, nil
}
