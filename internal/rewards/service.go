package rewards

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/filtercore/pricing-backend/pkg/db/models"
	pkgerrors "github.com/filtercore/pricing-backend/pkg/errors"
	"github.com/filtercore/pricing-backend/pkg/logger"
)

const (
	MaxCartItems = 100

	maxItemQuantity   = 999
	maxRewardQuantity = 100
)

var (
	maxUnitPrice = decimal.RequireFromString("999999.99")
	maxSubtotal  = decimal.RequireFromString("99999999.99")
)

// ProductLookup resolves catalog products; missing references return (nil, nil).
type ProductLookup interface {
	ByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	BySKU(ctx context.Context, sku string) (*models.Product, error)
}

// DealLookup returns the single applicable deal for a subtotal, or nil.
type DealLookup interface {
	FindApplicable(ctx context.Context, subtotal decimal.Decimal) (*models.Deal, error)
}

// CartItem is one requested cart line. Either ProductID or SKU identifies the
// product; UnitPrice overrides the catalog price when supplied.
type CartItem struct {
	ProductID *uuid.UUID
	SKU       string
	Quantity  int
	UnitPrice *decimal.Decimal
}

// ResolveInput is the full cart snapshot handed to the resolver.
type ResolveInput struct {
	Items    []CartItem
	Subtotal *decimal.Decimal
}

// RewardLine is one computed gift line to attach to the cart.
type RewardLine struct {
	ProductID uuid.UUID       `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Source    string          `json:"source"`
	SourceID  string          `json:"source_id"`
}

// AppliedDeal identifies a deal that contributed rewards.
type AppliedDeal struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

// Result is the resolver output.
type Result struct {
	Rewards      []RewardLine  `json:"rewards"`
	AppliedDeals []AppliedDeal `json:"applied_deals"`
}

// Service computes gift-with-purchase and deal rewards for a cart.
type Service interface {
	Resolve(ctx context.Context, input ResolveInput) (*Result, error)
}

type service struct {
	products ProductLookup
	deals    DealLookup
	logg     *logger.Logger
}

// NewService builds a rewards resolver backed by the provided lookups.
func NewService(products ProductLookup, deals DealLookup, logg *logger.Logger) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product lookup required")
	}
	if deals == nil {
		return nil, fmt.Errorf("deal lookup required")
	}
	return &service{products: products, deals: deals, logg: logg}, nil
}

const (
	sourceProduct = "product"
	sourceDeal    = "deal"
)

// accumulator merges reward lines sharing a key. Quantities sum; a later
// price override replaces the stored price (last write wins).
type accumulator struct {
	order   []string
	entries map[string]*RewardLine
}

func newAccumulator() *accumulator {
	return &accumulator{entries: map[string]*RewardLine{}}
}

func rewardKey(source, sourceID string, productID uuid.UUID) string {
	return fmt.Sprintf("reward:%s:%s:%s", source, sourceID, productID)
}

func (a *accumulator) add(line RewardLine) {
	key := rewardKey(line.Source, line.SourceID, line.ProductID)
	if existing, ok := a.entries[key]; ok {
		existing.Quantity += line.Quantity
		existing.UnitPrice = line.UnitPrice
		return
	}
	a.order = append(a.order, key)
	copied := line
	a.entries[key] = &copied
}

func (a *accumulator) lines() []RewardLine {
	out := make([]RewardLine, 0, len(a.order))
	for _, key := range a.order {
		out = append(out, *a.entries[key])
	}
	return out
}

// Resolve computes product-level gift-with-purchase rewards for every line
// item, then the single order-level deal reward for the effective subtotal.
// Unresolvable product or SKU references are skipped: a partial reward result
// is preferred over blocking checkout.
func (s *service) Resolve(ctx context.Context, input ResolveInput) (*Result, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart must contain at least one item")
	}
	if len(input.Items) > MaxCartItems {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("cart may contain at most %d items", MaxCartItems))
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive")
		}
		if item.ProductID == nil && item.SKU == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item requires a product id or sku")
		}
	}

	acc := newAccumulator()
	computedSubtotal := decimal.Zero

	for _, item := range input.Items {
		product, err := s.resolveProduct(ctx, item)
		if err != nil {
			return nil, err
		}
		if product == nil {
			s.skip(ctx, "rewards.item_unresolvable", item.SKU)
			continue
		}

		quantity := clampInt(item.Quantity, 1, maxItemQuantity)
		unitPrice := product.Price
		if item.UnitPrice != nil {
			unitPrice = *item.UnitPrice
		}
		unitPrice = clampPrice(unitPrice, maxUnitPrice)
		computedSubtotal = computedSubtotal.Add(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))

		if err := s.addProductReward(ctx, acc, product, quantity); err != nil {
			return nil, err
		}
	}

	result := &Result{}

	subtotal := effectiveSubtotal(input.Subtotal, computedSubtotal)
	deal, err := s.deals.FindApplicable(ctx, subtotal)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load applicable deal")
	}
	if deal != nil {
		if deal.RewardAutoAdd {
			if err := s.addDealRewards(ctx, acc, deal); err != nil {
				return nil, err
			}
		}
		result.AppliedDeals = append(result.AppliedDeals, AppliedDeal{ID: deal.ID, Description: deal.Description})
	}

	result.Rewards = acc.lines()
	return result, nil
}

func (s *service) resolveProduct(ctx context.Context, item CartItem) (*models.Product, error) {
	if item.ProductID != nil && *item.ProductID != uuid.Nil {
		product, err := s.products.ByID(ctx, *item.ProductID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
		if product != nil {
			return product, nil
		}
	}
	if item.SKU != "" {
		product, err := s.products.BySKU(ctx, item.SKU)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product by sku")
		}
		return product, nil
	}
	return nil, nil
}

// addProductReward attaches the line's gift-with-purchase product, if any.
// The reward always prices at zero.
func (s *service) addProductReward(ctx context.Context, acc *accumulator, product *models.Product, _ int) error {
	if !product.GiftAutoAdd || product.GiftProduct == nil {
		return nil
	}

	gift, err := s.products.ByID(ctx, *product.GiftProduct)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load gift product")
	}
	if gift == nil {
		// broken reference, tolerated at read time
		s.skip(ctx, "rewards.gift_unresolvable", product.SKU)
		return nil
	}

	acc.add(RewardLine{
		ProductID: gift.ID,
		SKU:       gift.SKU,
		Name:      gift.Name,
		Quantity:  clampInt(product.GiftQty, 1, maxRewardQuantity),
		UnitPrice: decimal.Zero,
		Source:    sourceProduct,
		SourceID:  product.ID.String(),
	})
	return nil
}

func (s *service) addDealRewards(ctx context.Context, acc *accumulator, deal *models.Deal) error {
	for _, reward := range deal.Rewards {
		product, err := s.products.BySKU(ctx, reward.SKU)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load deal reward product")
		}
		if product == nil {
			s.skip(ctx, "rewards.deal_sku_unresolvable", reward.SKU)
			continue
		}

		price := decimal.Zero
		if reward.PriceOverride != nil {
			price = clampPrice(*reward.PriceOverride, maxUnitPrice)
		}

		acc.add(RewardLine{
			ProductID: product.ID,
			SKU:       product.SKU,
			Name:      product.Name,
			Quantity:  clampInt(reward.Quantity, 1, maxRewardQuantity),
			UnitPrice: price,
			Source:    sourceDeal,
			SourceID:  fmt.Sprintf("%d", deal.ID),
		})
	}
	return nil
}

func (s *service) skip(ctx context.Context, event, ref string) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(s.logg.WithField(ctx, "ref", ref), event)
}

// effectiveSubtotal prefers a non-negative client-supplied subtotal over the
// computed one, clamped to the supported range either way.
func effectiveSubtotal(supplied *decimal.Decimal, computed decimal.Decimal) decimal.Decimal {
	subtotal := computed
	if supplied != nil && !supplied.IsNegative() {
		subtotal = *supplied
	}
	return clampPrice(subtotal, maxSubtotal)
}

func clampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func clampPrice(value, max decimal.Decimal) decimal.Decimal {
	if value.IsNegative() {
		return decimal.Zero
	}
	if value.GreaterThan(max) {
		return max
	}
	return value
}
