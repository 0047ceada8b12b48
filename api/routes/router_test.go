package routes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/filtercore/pricing-backend/internal/pricing"
	"github.com/filtercore/pricing-backend/internal/rewards"
	"github.com/filtercore/pricing-backend/pkg/config"
	"github.com/filtercore/pricing-backend/pkg/db/models"
	"github.com/filtercore/pricing-backend/pkg/logger"
	"github.com/filtercore/pricing-backend/pkg/metrics"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

type stubRateStore struct {
	mu     sync.Mutex
	counts map[string]int64
}

func (s *stubRateStore) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counts == nil {
		s.counts = map[string]int64{}
	}
	s.counts[key]++
	return s.counts[key], nil
}

type stubTierService struct{}

func (stubTierService) ByProductID(ctx context.Context, productID uuid.UUID) (*models.TierPricing, error) {
	return nil, nil
}

func (stubTierService) BySKU(ctx context.Context, sku string) (*models.TierPricing, error) {
	return nil, nil
}

func (stubTierService) Get(ctx context.Context, id uuid.UUID) (*models.TierPricing, error) {
	panic("unimplemented")
}

func (stubTierService) List(ctx context.Context) ([]models.TierPricing, error) {
	panic("unimplemented")
}

func (stubTierService) Create(ctx context.Context, table models.TierPricing) (*models.TierPricing, error) {
	panic("unimplemented")
}

func (stubTierService) Update(ctx context.Context, table models.TierPricing) (*models.TierPricing, error) {
	panic("unimplemented")
}

func (stubTierService) Delete(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

func (stubTierService) Validate(tiers []models.Tier) pricing.TiersValidation {
	return pricing.TiersValidation{Valid: true}
}

type stubAccountService struct{}

func (stubAccountService) GetAccount(ctx context.Context, id uuid.UUID) (*models.B2BAccount, error) {
	panic("unimplemented")
}

func (stubAccountService) ListAccounts(ctx context.Context) ([]models.B2BAccount, error) {
	panic("unimplemented")
}

func (stubAccountService) CreateAccount(ctx context.Context, account models.B2BAccount) (*models.B2BAccount, error) {
	panic("unimplemented")
}

func (stubAccountService) UpdateAccount(ctx context.Context, account models.B2BAccount) (*models.B2BAccount, error) {
	panic("unimplemented")
}

func (stubAccountService) CheckOrder(ctx context.Context, accountID uuid.UUID, orderTotal decimal.Decimal) (pricing.OrderDecision, error) {
	panic("unimplemented")
}

type stubRewardService struct {
	resolve func(ctx context.Context, input rewards.ResolveInput) (*rewards.Result, error)
}

func (s stubRewardService) Resolve(ctx context.Context, input rewards.ResolveInput) (*rewards.Result, error) {
	if s.resolve != nil {
		return s.resolve(ctx, input)
	}
	return &rewards.Result{}, nil
}

type stubDiscountService struct{}

func (stubDiscountService) CreateOrderDiscount(ctx context.Context, rule models.OrderDiscount) (*models.OrderDiscount, error) {
	panic("unimplemented")
}

func (stubDiscountService) UpdateOrderDiscount(ctx context.Context, rule models.OrderDiscount) (*models.OrderDiscount, error) {
	panic("unimplemented")
}

func (stubDiscountService) GetOrderDiscount(ctx context.Context, id int64) (*models.OrderDiscount, error) {
	panic("unimplemented")
}

func (stubDiscountService) GetOrderDiscountByCode(ctx context.Context, code string) (*models.OrderDiscount, error) {
	panic("unimplemented")
}

func (stubDiscountService) ListOrderDiscounts(ctx context.Context) ([]models.OrderDiscount, error) {
	return []models.OrderDiscount{}, nil
}

func (stubDiscountService) DeleteOrderDiscount(ctx context.Context, id int64) error {
	panic("unimplemented")
}

func (stubDiscountService) CreateProductDiscount(ctx context.Context, rule models.ProductDiscount) (*models.ProductDiscount, error) {
	panic("unimplemented")
}

func (stubDiscountService) UpdateProductDiscount(ctx context.Context, rule models.ProductDiscount) (*models.ProductDiscount, error) {
	panic("unimplemented")
}

func (stubDiscountService) GetProductDiscount(ctx context.Context, id int64) (*models.ProductDiscount, error) {
	panic("unimplemented")
}

func (stubDiscountService) GetProductDiscountByCode(ctx context.Context, code string) (*models.ProductDiscount, error) {
	panic("unimplemented")
}

func (stubDiscountService) ListProductDiscounts(ctx context.Context) ([]models.ProductDiscount, error) {
	panic("unimplemented")
}

func (stubDiscountService) DeleteProductDiscount(ctx context.Context, id int64) error {
	panic("unimplemented")
}

type stubDealRepo struct{}

func (stubDealRepo) FindApplicable(ctx context.Context, subtotal decimal.Decimal) (*models.Deal, error) {
	return nil, nil
}

func (stubDealRepo) GetByID(ctx context.Context, id int64) (*models.Deal, error) {
	panic("unimplemented")
}

func (stubDealRepo) List(ctx context.Context) ([]models.Deal, error) {
	panic("unimplemented")
}

func (stubDealRepo) Create(ctx context.Context, deal *models.Deal) (*models.Deal, error) {
	panic("unimplemented")
}

func (stubDealRepo) Update(ctx context.Context, deal *models.Deal) (*models.Deal, error) {
	panic("unimplemented")
}

func (stubDealRepo) Delete(ctx context.Context, id int64) error {
	panic("unimplemented")
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		RateLimit: config.RateLimitConfig{
			QuoteWindow:   time.Minute,
			QuoteIPLimit:  60,
			RewardWindow:  time.Minute,
			RewardIPLimit: 2,
		},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config, dbP stubPinger, rewardSvc rewards.Service) http.Handler {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	quoter, err := pricing.NewQuoter(stubTierService{})
	if err != nil {
		t.Fatalf("build quoter: %v", err)
	}
	if rewardSvc == nil {
		rewardSvc = stubRewardService{}
	}
	return NewRouter(
		cfg,
		logg,
		dbP,
		stubPinger{},
		&stubRateStore{},
		metrics.NewPricingMetrics(prometheus.NewRegistry()),
		stubTierService{},
		stubAccountService{},
		quoter,
		rewardSvc,
		stubDiscountService{},
		stubDealRepo{},
	)
}

func TestHealthLiveReportsEnv(t *testing.T) {
	router := newTestRouter(t, testConfig(), stubPinger{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for live probe got %d", resp.Code)
	}
	if got := resp.Header().Get("X-FilterCore-Env"); got != "test" {
		t.Fatalf("expected env header test got %q", got)
	}
}

func TestHealthReadyDegradedWhenDatabaseDown(t *testing.T) {
	router := newTestRouter(t, testConfig(), stubPinger{err: fmt.Errorf("connection refused")}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when db is down got %d", resp.Code)
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := newTestRouter(t, testConfig(), stubPinger{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for metrics got %d", resp.Code)
	}
}

func TestCartRewardsRejectsBadJSON(t *testing.T) {
	router := newTestRouter(t, testConfig(), stubPinger{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/rewards", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload got %d", resp.Code)
	}
}

func TestCartRewardsResolvesCart(t *testing.T) {
	svc := stubRewardService{resolve: func(ctx context.Context, input rewards.ResolveInput) (*rewards.Result, error) {
		if len(input.Items) != 1 {
			t.Fatalf("expected 1 item got %d", len(input.Items))
		}
		return &rewards.Result{Rewards: []rewards.RewardLine{{SKU: "GIFT-1", Quantity: 1}}}, nil
	}}
	router := newTestRouter(t, testConfig(), stubPinger{}, svc)

	body := `{"items":[{"sku":"FF-100","quantity":2}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/rewards", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for cart rewards got %d", resp.Code)
	}
}

func TestCartRewardsRateLimitedPerIP(t *testing.T) {
	router := newTestRouter(t, testConfig(), stubPinger{}, nil)

	var last int
	for i := 0; i < 3; i++ {
		body := `{"items":[{"sku":"FF-100","quantity":1}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/rewards", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "203.0.113.9:4411"
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		last = resp.Code
	}

	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429 past the reward limit got %d", last)
	}
}
