package pricing

import (
	"fmt"
	"math"

	"go.uber.org/multierr"

	"github.com/filtercore/pricing-backend/pkg/db/models"
)

// TiersValidation is the batch outcome of validating a proposed tier table.
// Every violation is reported so admins can fix a table in one pass.
type TiersValidation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateTiers checks a proposed tier table for structural problems:
// an empty table, tiers lacking a pricing method, inverted quantity bounds,
// and overlapping quantity ranges. Tier positions in messages are 1-indexed.
func ValidateTiers(tiers []models.Tier) TiersValidation {
	var combined error

	if len(tiers) == 0 {
		combined = multierr.Append(combined, fmt.Errorf("at least one tier is required"))
	}

	for i, tier := range tiers {
		if _, ok := MethodFor(tier); !ok {
			combined = multierr.Append(combined, fmt.Errorf(
				"tier %d has no pricing method (fixed price, discount amount, or discount percentage)", i+1))
		}
		if tier.MaxQuantity != nil && tier.MinQuantity >= *tier.MaxQuantity {
			combined = multierr.Append(combined, fmt.Errorf(
				"tier %d min quantity (%d) must be less than max quantity (%d)", i+1, tier.MinQuantity, *tier.MaxQuantity))
		}
	}

	for i := 0; i < len(tiers); i++ {
		for j := i + 1; j < len(tiers); j++ {
			if tiersOverlap(tiers[i], tiers[j]) {
				combined = multierr.Append(combined, fmt.Errorf(
					"tiers %d and %d have overlapping quantity ranges", i+1, j+1))
			}
		}
	}

	errs := multierr.Errors(combined)
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Error())
	}

	return TiersValidation{
		Valid:  len(messages) == 0,
		Errors: messages,
	}
}

// tiersOverlap reports whether either tier's min quantity falls inside the
// other's effective range. A nil max quantity means unbounded above, so the
// symmetric check also catches duplicate ranges.
func tiersOverlap(a, b models.Tier) bool {
	aMax := effectiveMax(a)
	bMax := effectiveMax(b)
	if a.MinQuantity >= b.MinQuantity && a.MinQuantity <= bMax {
		return true
	}
	if b.MinQuantity >= a.MinQuantity && b.MinQuantity <= aMax {
		return true
	}
	return false
}

func effectiveMax(tier models.Tier) int {
	if tier.MaxQuantity == nil {
		return math.MaxInt
	}
	return *tier.MaxQuantity
}
