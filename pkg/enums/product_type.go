package enums

import "fmt"

// ProductType represents the filtration categories carried by the catalog.
type ProductType string

const (
	ProductTypeFridge     ProductType = "fridge"
	ProductTypeWater      ProductType = "water"
	ProductTypeAir        ProductType = "air"
	ProductTypeHumidifier ProductType = "humidifier"
	ProductTypePool       ProductType = "pool"
)

var validProductTypes = []ProductType{
	ProductTypeFridge,
	ProductTypeWater,
	ProductTypeAir,
	ProductTypeHumidifier,
	ProductTypePool,
}

// String implements fmt.Stringer.
func (p ProductType) String() string {
	return string(p)
}

// IsValid reports whether the value matches a known ProductType.
func (p ProductType) IsValid() bool {
	for _, candidate := range validProductTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductType converts raw input into a ProductType.
func ParseProductType(value string) (ProductType, error) {
	for _, candidate := range validProductTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product type: %q", value)
}
