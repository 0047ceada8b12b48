package enums

// PricingMethod tags how a volume tier computes its unit price.
type PricingMethod string

const (
	PricingMethodFixed      PricingMethod = "fixed"
	PricingMethodAmountOff  PricingMethod = "amount_off"
	PricingMethodPercentOff PricingMethod = "percent_off"
)

// String implements fmt.Stringer.
func (p PricingMethod) String() string {
	return string(p)
}
