package payment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/VictorAvelar/mollie-api-go/v3/mollie"

	"github.com/SanakShres/emergent-ecommerce/lib/myerrors"
)

type mollieGateway struct {
	client   *mollie.Client
	currency string
}

func NewMollieGateway(apiKey string, currency string) (Gateway, error) {
	config := mollie.NewAPITestingConfig(true)

	client, err := mollie.NewClient(nil, config)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error creating mollie client: %s", err))
	}
	client.WithAuthenticationValue(apiKey)

	return &mollieGateway{
		client:   client,
		currency: currency,
	}, nil
}

func (g *mollieGateway) Start(c context.Context, request CheckoutRequest) (Session, error) {
	currency := request.Currency
	if currency == "" {
		currency = g.currency
	}

	paymentRequest := mollie.Payment{
		Description: request.Description,
		RedirectURL: request.ReturnURL,
		Metadata: map[string]string{
			"orderUID": request.OrderID,
		},
		Amount: &mollie.Amount{
			Currency: currency,
			Value:    fmt.Sprintf("%.2f", float64(request.TotalInCents)/100.0),
		},
	}

	_, payment, err := g.client.Payments.Create(c, paymentRequest, nil)
	if err != nil {
		return Session{}, myerrors.NewInvalidInputError(fmt.Errorf("error creating mollie payment: %s", err))
	}

	checkoutURL := ""
	if payment.Links.Checkout != nil {
		checkoutURL = payment.Links.Checkout.Href
	}

	return Session{
		Reference: payment.ID,
		URL:       checkoutURL,
	}, nil
}

func (g *mollieGateway) SettlementStatus(c context.Context, reference string) (Settlement, error) {
	_, payment, err := g.client.Payments.Get(c, reference, &mollie.PaymentOptions{})
	if err != nil {
		return Settlement{}, myerrors.NewNotFoundError(fmt.Errorf("error fetching mollie payment %s: %s", reference, err))
	}

	settlement := Settlement{
		Reference: reference,
		Status:    asMollieStatus(payment.Status),
	}
	if payment.Amount != nil {
		settlement.Currency = payment.Amount.Currency
		settlement.AmountInCents = parseAmountInCents(payment.Amount.Value)
	}

	return settlement, nil
}

func asMollieStatus(status string) Status {
	switch status {
	case "paid":
		return StatusPaid
	case "failed", "canceled":
		return StatusFailed
	case "expired":
		return StatusExpired
	default:
		// open, pending, authorized
		return StatusPending
	}
}

func parseAmountInCents(value string) int64 {
	amount, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}

	return int64(amount*100 + 0.5)
}
