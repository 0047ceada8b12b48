package deals

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/filtercore/pricing-backend/pkg/db/models"
)

// SelectApplicable picks the single deal whose price band contains the
// subtotal. When bands overlap, the deal with the highest start price wins.
// Inactive deals and deals outside their validity window never match.
func SelectApplicable(candidates []models.Deal, subtotal decimal.Decimal, now time.Time) *models.Deal {
	var best *models.Deal
	for i := range candidates {
		deal := candidates[i]
		if !deal.Active || !deal.InWindow(now) || !deal.ContainsSubtotal(subtotal) {
			continue
		}
		if best == nil || deal.StartPrice.GreaterThan(best.StartPrice) {
			best = &deal
		}
	}
	return best
}
