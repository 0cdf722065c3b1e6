package checkout

import "github.com/SanakShres/emergent-ecommerce/services/cartapi"

// Price turns a cart snapshot and a shipping method into an order summary.
// Pure and deterministic: identical inputs yield identical summaries, and the
// shipping method influences only the shipping cost and the total. Tax is half-up
// rounded to the cent.
func Price(cart cartapi.Cart, method ShippingMethod) OrderSummary {
	subtotal := cart.Subtotal()
	tax := (subtotal*taxRateBasisPoints + 5000) / 10000

	return OrderSummary{
		Subtotal:       subtotal,
		TaxRate:        float64(taxRateBasisPoints) / 10000,
		Tax:            tax,
		ShippingMethod: method,
		ShippingCost:   shippingCosts[method],
		Total:          subtotal + tax + shippingCosts[method],
	}
}
