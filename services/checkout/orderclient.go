package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SanakShres/emergent-ecommerce/lib/myhttpclient"
	"github.com/SanakShres/emergent-ecommerce/services/cartapi"
	"github.com/SanakShres/emergent-ecommerce/services/checkoutapi"
	"github.com/SanakShres/emergent-ecommerce/services/identity"
)

// OrderRequest is submitted to the order service; the order it creates is
// immutable from this side once it exists.
type OrderRequest struct {
	Items          []cartapi.CartItem       `json:"items"`
	ShippingInfo   checkoutapi.ShippingInfo `json:"shipping_info"`
	ShippingMethod string                   `json:"shipping_method"`
}

type Order struct {
	ID            string `json:"id"`
	OrderNumber   string `json:"order_number"`
	TotalInCents  int64  `json:"total"`
	PaymentStatus string `json:"payment_status"`
}

//go:generate mockgen -source=orderclient.go -package checkout -destination orderclient_mock.go OrderClient
type OrderClient interface {
	Create(c context.Context, id identity.Identity, request OrderRequest) (Order, error)
}

type remoteOrderClient struct {
	baseURL string
	sender  myhttpclient.HTTPSender
}

func NewOrderClient(baseURL string, sender myhttpclient.HTTPSender) OrderClient {
	return &remoteOrderClient{
		baseURL: baseURL,
		sender:  sender,
	}
}

func (oc *remoteOrderClient) Create(c context.Context, id identity.Identity, request OrderRequest) (Order, error) {
	reqPayload, err := json.Marshal(request)
	if err != nil {
		return Order{}, fmt.Errorf("error serializing order request: %s", err)
	}

	headers := map[string]string{}
	if id.IsAuthenticated() {
		headers["Authorization"] = "Bearer " + id.AuthToken
	}

	httpStatus, respPayload, err := oc.sender.Send(c, http.MethodPost, oc.baseURL+"/orders", headers, reqPayload)
	if err != nil {
		return Order{}, fmt.Errorf("error creating order: %s", err)
	}
	if httpStatus < 200 || httpStatus >= 300 {
		return Order{}, fmt.Errorf("error creating order: got status %d", httpStatus)
	}

	order := Order{}
	err = json.Unmarshal(respPayload, &order)
	if err != nil {
		return Order{}, fmt.Errorf("error parsing order response: %s", err)
	}

	return order, nil
}
