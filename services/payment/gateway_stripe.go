package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"

	"github.com/SanakShres/emergent-ecommerce/lib/myerrors"
	"github.com/SanakShres/emergent-ecommerce/services/cartapi"
)

type stripeGateway struct {
	currency string
}

func NewStripeGateway(apiKey string, currency string) Gateway {
	stripe.Key = apiKey

	return &stripeGateway{
		currency: currency,
	}
}

func (g *stripeGateway) Start(c context.Context, request CheckoutRequest) (Session, error) {
	currency := request.Currency
	if currency == "" {
		currency = g.currency
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(request.OrderID),
		SuccessURL:        stripe.String(request.ReturnURL + "?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:         stripe.String(request.ReturnURL),
		LineItems:         asStripeLineItems(request.Items, currency),
	}
	if request.ShopperEmail != "" {
		params.CustomerEmail = stripe.String(request.ShopperEmail)
	}

	sess, err := session.New(params)
	if err != nil {
		return Session{}, myerrors.NewInvalidInputError(fmt.Errorf("error creating stripe session: %s", err))
	}

	return Session{
		Reference: sess.ID,
		URL:       sess.URL,
	}, nil
}

func asStripeLineItems(items []cartapi.CartItem, currency string) []*stripe.CheckoutSessionLineItemParams {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(int64(item.Quantity)),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(item.UnitPrice),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
			},
		})
	}

	return lineItems
}

func (g *stripeGateway) SettlementStatus(c context.Context, reference string) (Settlement, error) {
	sess, err := session.Get(reference, nil)
	if err != nil {
		return Settlement{}, myerrors.NewNotFoundError(fmt.Errorf("error fetching stripe session %s: %s", reference, err))
	}

	status := StatusPending
	switch {
	case sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid:
		status = StatusPaid
	case sess.Status == stripe.CheckoutSessionStatusExpired:
		status = StatusExpired
	}

	return Settlement{
		Reference:     reference,
		Status:        status,
		AmountInCents: sess.AmountTotal,
		Currency:      string(sess.Currency),
	}, nil
}
