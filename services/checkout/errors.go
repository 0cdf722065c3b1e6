package checkout

import "errors"

// ErrEmptyCart guards the checkout flow: with an empty cart the flow must not
// be entered, the caller redirects the shopper back to the shop.
var ErrEmptyCart = errors.New("cart is empty")

// ErrCheckoutFailed is the single condition surfaced when order creation or
// payment-session creation fails. No partial state is retained and there is no
// automatic retry: the shopper has to resubmit.
var ErrCheckoutFailed = errors.New("checkout failed")
