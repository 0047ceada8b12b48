package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/filtercore/pricing-backend/api/controllers"
	pricingcontrollers "github.com/filtercore/pricing-backend/api/controllers/pricing"
	rewardcontrollers "github.com/filtercore/pricing-backend/api/controllers/rewards"
	"github.com/filtercore/pricing-backend/api/middleware"
	"github.com/filtercore/pricing-backend/internal/b2b"
	"github.com/filtercore/pricing-backend/internal/deals"
	"github.com/filtercore/pricing-backend/internal/discounts"
	pricingcore "github.com/filtercore/pricing-backend/internal/pricing"
	"github.com/filtercore/pricing-backend/internal/rewards"
	"github.com/filtercore/pricing-backend/internal/tierpricing"
	"github.com/filtercore/pricing-backend/pkg/config"
	"github.com/filtercore/pricing-backend/pkg/logger"
	"github.com/filtercore/pricing-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	cacheP controllers.Pinger,
	limiter middleware.RateLimiterStore,
	m *metrics.PricingMetrics,
	tierService tierpricing.Service,
	accountService b2b.Service,
	quoter *pricingcore.Quoter,
	rewardService rewards.Service,
	discountService discounts.Service,
	dealRepo deals.Repository,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	quotePolicy := middleware.NewRateLimitPolicy(
		"quote",
		cfg.RateLimit.QuoteWindow,
		cfg.RateLimit.QuoteIPLimit,
	)
	rewardPolicy := middleware.NewRateLimitPolicy(
		"reward",
		cfg.RateLimit.RewardWindow,
		cfg.RateLimit.RewardIPLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, cacheP))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/pricing", func(r chi.Router) {
		r.Use(middleware.RateLimit(quotePolicy, limiter, logg))
		r.Post("/tier-quote", pricingcontrollers.TierQuote(tierService, m, logg))
		r.Post("/b2b-quote", pricingcontrollers.B2BQuote(accountService, quoter, m, logg))
		r.Post("/tiers/validate", pricingcontrollers.ValidateTiers(logg))
		r.Post("/credit-check", pricingcontrollers.CreditCheck(accountService, m, logg))
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(middleware.RateLimit(rewardPolicy, limiter, logg))
		r.Post("/rewards", rewardcontrollers.CartRewards(rewardService, m, logg))
	})

	r.Get("/api/v1/deals/applicable", controllers.DealApplicable(dealRepo, logg))

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Route("/discounts/order", func(r chi.Router) {
			r.Get("/", controllers.AdminOrderDiscountList(discountService, logg))
			r.Post("/", controllers.AdminOrderDiscountCreate(discountService, logg))
			r.Get("/{discountId}", controllers.AdminOrderDiscountGet(discountService, logg))
			r.Put("/{discountId}", controllers.AdminOrderDiscountUpdate(discountService, logg))
			r.Delete("/{discountId}", controllers.AdminOrderDiscountDelete(discountService, logg))
		})
		r.Route("/discounts/product", func(r chi.Router) {
			r.Get("/", controllers.AdminProductDiscountList(discountService, logg))
			r.Post("/", controllers.AdminProductDiscountCreate(discountService, logg))
			r.Get("/{discountId}", controllers.AdminProductDiscountGet(discountService, logg))
			r.Put("/{discountId}", controllers.AdminProductDiscountUpdate(discountService, logg))
			r.Delete("/{discountId}", controllers.AdminProductDiscountDelete(discountService, logg))
		})
		r.Route("/tier-pricing", func(r chi.Router) {
			r.Get("/", controllers.AdminTierPricingList(tierService, logg))
			r.Post("/", controllers.AdminTierPricingCreate(tierService, logg))
			r.Get("/{tierPricingId}", controllers.AdminTierPricingGet(tierService, logg))
			r.Put("/{tierPricingId}", controllers.AdminTierPricingUpdate(tierService, logg))
			r.Delete("/{tierPricingId}", controllers.AdminTierPricingDelete(tierService, logg))
		})
		r.Route("/deals", func(r chi.Router) {
			r.Get("/", controllers.AdminDealList(dealRepo, logg))
			r.Post("/", controllers.AdminDealCreate(dealRepo, logg))
			r.Get("/{dealId}", controllers.AdminDealGet(dealRepo, logg))
			r.Put("/{dealId}", controllers.AdminDealUpdate(dealRepo, logg))
			r.Delete("/{dealId}", controllers.AdminDealDelete(dealRepo, logg))
		})
		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", controllers.AdminAccountList(accountService, logg))
			r.Post("/", controllers.AdminAccountCreate(accountService, logg))
			r.Get("/{accountId}", controllers.AdminAccountGet(accountService, logg))
			r.Put("/{accountId}", controllers.AdminAccountUpdate(accountService, logg))
		})
	})

	return r
}
