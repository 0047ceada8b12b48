package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/filtercore/pricing-backend/pkg/db/models"
	"github.com/filtercore/pricing-backend/pkg/enums"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func decPtr(value string) *decimal.Decimal {
	d := dec(value)
	return &d
}

func intPtr(value int) *int {
	return &value
}

func TestSelectTierHighestMatchingMinimum(t *testing.T) {
	t.Parallel()

	tiers := []models.Tier{
		{MinQuantity: 1, MaxQuantity: intPtr(11), FixedPrice: decPtr("10.00")},
		{MinQuantity: 12, MaxQuantity: intPtr(23), DiscountPercentage: decPtr("10")},
		{MinQuantity: 24, FixedPrice: decPtr("8.50")},
	}

	if res := selectTier(30, tiers); res == nil || res.MinQuantity != 24 {
		t.Fatalf("expected tier with min quantity 24, got %+v", res)
	}
	if res := selectTier(12, tiers); res == nil || res.MinQuantity != 12 {
		t.Fatalf("expected tier with min quantity 12, got %+v", res)
	}
	if res := selectTier(0, tiers); res != nil {
		t.Fatalf("expected no tier for quantity 0, got %+v", res)
	}
}

func TestCalculateTierPriceFixedOverride(t *testing.T) {
	t.Parallel()

	table := &models.TierPricing{Tiers: []models.Tier{
		{MinQuantity: 1, MaxQuantity: intPtr(11), FixedPrice: decPtr("10.00")},
		{MinQuantity: 12, MaxQuantity: intPtr(23), DiscountPercentage: decPtr("10")},
		{MinQuantity: 24, FixedPrice: decPtr("8.50")},
	}}

	res := CalculateTierPrice(dec("10.00"), 30, table)
	if !res.UnitPrice.Equal(dec("8.50")) {
		t.Fatalf("expected unit price 8.50, got %s", res.UnitPrice)
	}
	if res.TierApplied == nil || res.TierApplied.MinQuantity != 24 {
		t.Fatalf("expected applied tier min quantity 24, got %+v", res.TierApplied)
	}
	if !res.Subtotal.Equal(dec("255.00")) {
		t.Fatalf("expected subtotal 255.00, got %s", res.Subtotal)
	}
	if !res.Savings.Equal(dec("45.00")) {
		t.Fatalf("expected savings 45.00, got %s", res.Savings)
	}
	if !res.SavingsPercentage.Equal(dec("15")) {
		t.Fatalf("expected savings percentage 15, got %s", res.SavingsPercentage)
	}
}

func TestCalculateTierPriceNoMatchReturnsBase(t *testing.T) {
	t.Parallel()

	table := &models.TierPricing{Tiers: []models.Tier{
		{MinQuantity: 12, DiscountPercentage: decPtr("10")},
	}}

	res := CalculateTierPrice(dec("19.99"), 5, table)
	if !res.UnitPrice.Equal(dec("19.99")) {
		t.Fatalf("expected base price back, got %s", res.UnitPrice)
	}
	if res.TierApplied != nil {
		t.Fatalf("expected nil applied tier, got %+v", res.TierApplied)
	}
	if !res.Savings.IsZero() {
		t.Fatalf("expected zero savings, got %s", res.Savings)
	}
}

func TestCalculateTierPriceNilTable(t *testing.T) {
	t.Parallel()

	res := CalculateTierPrice(dec("4.25"), 3, nil)
	if !res.UnitPrice.Equal(dec("4.25")) || res.TierApplied != nil {
		t.Fatalf("expected pass-through quote, got %+v", res)
	}
	if !res.Subtotal.Equal(dec("12.75")) {
		t.Fatalf("expected subtotal 12.75, got %s", res.Subtotal)
	}
}

func TestCalculateTierPriceMethodlessTierPassesThrough(t *testing.T) {
	t.Parallel()

	table := &models.TierPricing{Tiers: []models.Tier{
		{MinQuantity: 1},
	}}

	res := CalculateTierPrice(dec("7.00"), 2, table)
	if !res.UnitPrice.Equal(dec("7.00")) {
		t.Fatalf("expected base price for methodless tier, got %s", res.UnitPrice)
	}
	if res.TierApplied != nil {
		t.Fatalf("expected nil applied tier for methodless tier, got %+v", res.TierApplied)
	}
}

func TestMethodPrecedence(t *testing.T) {
	t.Parallel()

	tier := models.Tier{
		MinQuantity:        1,
		FixedPrice:         decPtr("5.00"),
		DiscountAmount:     decPtr("2.00"),
		DiscountPercentage: decPtr("50"),
	}
	method, ok := MethodFor(tier)
	if !ok || method.Kind != enums.PricingMethodFixed {
		t.Fatalf("expected fixed price to win, got %+v", method)
	}

	tier.FixedPrice = nil
	method, ok = MethodFor(tier)
	if !ok || method.Kind != enums.PricingMethodAmountOff {
		t.Fatalf("expected discount amount to win, got %+v", method)
	}

	tier.DiscountAmount = nil
	method, ok = MethodFor(tier)
	if !ok || method.Kind != enums.PricingMethodPercentOff {
		t.Fatalf("expected discount percentage, got %+v", method)
	}
}

func TestMethodAmountOffFloorsAtZero(t *testing.T) {
	t.Parallel()

	method := Method{Kind: enums.PricingMethodAmountOff, Value: dec("5.00")}
	if got := method.Apply(dec("3.00")); !got.IsZero() {
		t.Fatalf("expected floor at zero, got %s", got)
	}
}
