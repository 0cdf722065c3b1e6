package checkout

import "fmt"

type ShippingMethod string

const (
	ShippingPickup   ShippingMethod = "pickup"
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

// shippingCosts is a fixed lookup table, in cents.
var shippingCosts = map[ShippingMethod]int64{
	ShippingPickup:   0,
	ShippingStandard: 1000,
	ShippingExpress:  2500,
}

func ParseShippingMethod(value string) (ShippingMethod, error) {
	method := ShippingMethod(value)
	if _, ok := shippingCosts[method]; !ok {
		return "", fmt.Errorf("unknown shipping method %q", value)
	}

	return method, nil
}

// taxRateBasisPoints is 10.00%.
const taxRateBasisPoints = 1000

// OrderSummary is derived from a cart snapshot and a shipping method, never
// persisted independently of the cart it was derived from. All amounts in cents.
type OrderSummary struct {
	Subtotal       int64          `json:"subtotal"`
	TaxRate        float64        `json:"taxRate"`
	Tax            int64          `json:"tax"`
	ShippingMethod ShippingMethod `json:"shippingMethod"`
	ShippingCost   int64          `json:"shippingCost"`
	Total          int64          `json:"total"`
}
