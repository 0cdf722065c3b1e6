package checkout

import (
	"context"
	"fmt"

	"github.com/SanakShres/emergent-ecommerce/lib/myerrors"
	"github.com/SanakShres/emergent-ecommerce/lib/mylog"
	"github.com/SanakShres/emergent-ecommerce/services/cartapi"
	"github.com/SanakShres/emergent-ecommerce/services/checkoutapi"
	"github.com/SanakShres/emergent-ecommerce/services/checkout/checkoutevents"
	"github.com/SanakShres/emergent-ecommerce/services/identity"
	"github.com/SanakShres/emergent-ecommerce/services/payment"
)

// summarize prices the current cart under the given shipping method. A stale
// cart view is acceptable here: the order submission re-fetches.
func (s *service) summarize(c context.Context, id identity.Identity, method ShippingMethod) (OrderSummary, error) {
	cart, err := s.carts.Fetch(c, id)
	if err != nil {
		s.logger.Log(c, id.Key(), mylog.SeverityWarn, "Pricing against stale cart: %s", err)
	}

	return Price(cart, method), nil
}

// startCheckout runs the submission protocol: create the order, start the
// payment session, persist the checkout context and hand the shopper off to
// the hosted payment page. Sequential, not retried; any failure surfaces as
// ErrCheckoutFailed and leaves no partial client-side state behind.
func (s *service) startCheckout(c context.Context, id identity.Identity, form checkoutapi.CheckoutForm, returnURL string) (string, error) {
	method, err := ParseShippingMethod(form.ShippingMethod)
	if err != nil {
		return "", myerrors.NewInvalidInputError(err)
	}

	cart, err := s.carts.Fetch(c, id)
	if err != nil {
		// an order must be created from a fresh snapshot, a stale one will not do
		return "", fmt.Errorf("%w: %s", ErrCheckoutFailed, err)
	}
	if cart.IsEmpty() {
		return "", ErrEmptyCart
	}

	summary := Price(cart, method)
	now := s.nower.Now()

	s.logger.Log(c, id.Key(), mylog.SeverityInfo, "Start checkout: %d items, total %d %s",
		cart.ItemCount(), summary.Total, s.currency)

	order, err := s.orders.Create(c, id, OrderRequest{
		Items:          cart.Items,
		ShippingInfo:   form.ShippingInfo,
		ShippingMethod: string(method),
	})
	if err != nil {
		return "", fmt.Errorf("%w: error creating order: %s", ErrCheckoutFailed, err)
	}

	session, err := s.gateway.Start(c, payment.CheckoutRequest{
		OrderID:      order.ID,
		Items:        cart.Items,
		TotalInCents: summary.Total,
		Currency:     s.currency,
		Description:  fmt.Sprintf("Order %s (%s %s)", order.OrderNumber, cartapi.FormatCents(summary.Total), s.currency),
		ReturnURL:    returnURL,
		ShopperEmail: form.ShippingInfo.Email,
	})
	if err != nil {
		return "", fmt.Errorf("%w: error creating payment session: %s", ErrCheckoutFailed, err)
	}

	err = s.checkoutStore.RunInTransaction(c, func(c context.Context) error {
		// must be idempotent

		err := s.checkoutStore.Put(c, session.Reference, checkoutapi.CheckoutContext{
			Reference:      session.Reference,
			OrderUID:       order.ID,
			CreatedAt:      now,
			ReturnURL:      returnURL,
			AmountInCents:  summary.Total,
			Currency:       s.currency,
			ShippingMethod: string(method),
			IdentityKind:   string(id.Kind),
			SessionToken:   id.SessionToken,
			AuthToken:      id.AuthToken,
			PaymentStatus:  string(payment.StatusPending),
		})
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing checkout context: %s", err))
		}

		err = s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutStarted{
			OrderUID:      order.ID,
			Reference:     session.Reference,
			ProviderName:  s.providerName,
			AmountInCents: summary.Total,
			Currency:      s.currency,
			ShopperKey:    id.Key(),
		})
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error publishing event: %s", err))
		}

		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrCheckoutFailed, err)
	}

	return session.URL, nil
}
