package deals

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/filtercore/pricing-backend/pkg/db/models"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestSelectApplicableHighestStartPriceWins(t *testing.T) {
	t.Parallel()

	candidates := []models.Deal{
		{ID: 1, StartPrice: dec("50"), EndPrice: dec("100"), Active: true},
		{ID: 2, StartPrice: dec("70"), EndPrice: dec("90"), Active: true},
	}

	got := SelectApplicable(candidates, dec("75"), time.Now())
	if got == nil || got.ID != 2 {
		t.Fatalf("expected deal 2 (startprice 70) to win, got %+v", got)
	}
}

func TestSelectApplicableNoBandMatch(t *testing.T) {
	t.Parallel()

	candidates := []models.Deal{
		{ID: 1, StartPrice: dec("50"), EndPrice: dec("100"), Active: true},
	}

	if got := SelectApplicable(candidates, dec("150"), time.Now()); got != nil {
		t.Fatalf("expected no deal for subtotal outside band, got %+v", got)
	}
}

func TestSelectApplicableSkipsInactive(t *testing.T) {
	t.Parallel()

	candidates := []models.Deal{
		{ID: 1, StartPrice: dec("50"), EndPrice: dec("100"), Active: false},
	}

	if got := SelectApplicable(candidates, dec("75"), time.Now()); got != nil {
		t.Fatalf("expected inactive deal to be skipped, got %+v", got)
	}
}

func TestSelectApplicableHonorsWindow(t *testing.T) {
	t.Parallel()

	now := time.Now()
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	candidates := []models.Deal{
		{ID: 1, StartPrice: dec("50"), EndPrice: dec("100"), Active: true, ValidFrom: &future},
		{ID: 2, StartPrice: dec("50"), EndPrice: dec("100"), Active: true, ValidTo: &past},
		{ID: 3, StartPrice: dec("50"), EndPrice: dec("100"), Active: true, ValidFrom: &past, ValidTo: &future},
	}

	got := SelectApplicable(candidates, dec("75"), now)
	if got == nil || got.ID != 3 {
		t.Fatalf("expected only the in-window deal to match, got %+v", got)
	}
}

func TestSelectApplicableInclusiveBounds(t *testing.T) {
	t.Parallel()

	candidates := []models.Deal{
		{ID: 1, StartPrice: dec("50"), EndPrice: dec("100"), Active: true},
	}

	if got := SelectApplicable(candidates, dec("50"), time.Now()); got == nil {
		t.Fatal("expected start of band to match")
	}
	if got := SelectApplicable(candidates, dec("100"), time.Now()); got == nil {
		t.Fatal("expected end of band to match")
	}
}
