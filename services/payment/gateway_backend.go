package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/SanakShres/emergent-ecommerce/lib/myerrors"
	"github.com/SanakShres/emergent-ecommerce/lib/myhttpclient"
)

// backendGateway speaks the storefront backend's own payment facade:
// POST payments/create-checkout?order_id=... and GET payments/status/{ref}.
// The backend hides which provider actually hosts the payment page.
type backendGateway struct {
	baseURL string
	sender  myhttpclient.HTTPSender
}

func NewBackendGateway(baseURL string, sender myhttpclient.HTTPSender) Gateway {
	return &backendGateway{
		baseURL: baseURL,
		sender:  sender,
	}
}

func (g *backendGateway) Start(c context.Context, request CheckoutRequest) (Session, error) {
	u := fmt.Sprintf("%s/payments/create-checkout?order_id=%s", g.baseURL, url.QueryEscape(request.OrderID))

	httpStatus, respPayload, err := g.sender.Send(c, http.MethodPost, u, nil, nil)
	if err != nil {
		return Session{}, myerrors.NewUnavailableError(fmt.Errorf("error creating checkout session: %s", err))
	}
	if httpStatus != http.StatusOK {
		return Session{}, myerrors.NewInternalError(fmt.Errorf("error creating checkout session: got status %d", httpStatus))
	}

	var resp struct {
		URL       string `json:"url"`
		SessionID string `json:"session_id"`
	}
	err = json.Unmarshal(respPayload, &resp)
	if err != nil {
		return Session{}, myerrors.NewInternalError(fmt.Errorf("error parsing checkout session response: %s", err))
	}

	reference := resp.SessionID
	if reference == "" {
		reference = request.OrderID
	}

	return Session{
		Reference: reference,
		URL:       resp.URL,
	}, nil
}

func (g *backendGateway) SettlementStatus(c context.Context, reference string) (Settlement, error) {
	u := fmt.Sprintf("%s/payments/status/%s", g.baseURL, url.PathEscape(reference))

	httpStatus, respPayload, err := g.sender.Send(c, http.MethodGet, u, nil, nil)
	if err != nil {
		return Settlement{}, myerrors.NewUnavailableError(fmt.Errorf("error fetching payment status: %s", err))
	}
	if httpStatus != http.StatusOK {
		return Settlement{}, myerrors.NewInternalError(fmt.Errorf("error fetching payment status: got status %d", httpStatus))
	}

	var resp struct {
		PaymentStatus string `json:"payment_status"`
		AmountTotal   int64  `json:"amount_total"`
		Currency      string `json:"currency"`
	}
	err = json.Unmarshal(respPayload, &resp)
	if err != nil {
		return Settlement{}, myerrors.NewInternalError(fmt.Errorf("error parsing payment status response: %s", err))
	}

	return Settlement{
		Reference:     reference,
		Status:        asStatus(resp.PaymentStatus),
		AmountInCents: resp.AmountTotal,
		Currency:      resp.Currency,
	}, nil
}

func asStatus(paymentStatus string) Status {
	switch paymentStatus {
	case "paid":
		return StatusPaid
	case "failed", "canceled", "cancelled":
		return StatusFailed
	case "expired":
		return StatusExpired
	default:
		return StatusPending
	}
}
