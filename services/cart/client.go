package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/SanakShres/emergent-ecommerce/lib/myhttpclient"
	"github.com/SanakShres/emergent-ecommerce/services/cartapi"
	"github.com/SanakShres/emergent-ecommerce/services/identity"
)

// Client talks to the remote cart service, the single source of truth for cart
// contents. Every call is keyed by exactly one of the two identity mechanisms:
// a bearer auth header or a session_id query parameter.
//
//go:generate mockgen -source=client.go -package cart -destination client_mock.go Client
type Client interface {
	Fetch(c context.Context, id identity.Identity) (cartapi.Cart, error)
	AddItem(c context.Context, id identity.Identity, item cartapi.CartItem) (cartapi.Cart, error)
	UpdateQuantity(c context.Context, id identity.Identity, productID string, quantity int) error
	RemoveItem(c context.Context, id identity.Identity, productID string) error
	Clear(c context.Context, id identity.Identity) error
}

type remoteClient struct {
	baseURL string
	sender  myhttpclient.HTTPSender
}

func NewClient(baseURL string, sender myhttpclient.HTTPSender) Client {
	return &remoteClient{
		baseURL: baseURL,
		sender:  sender,
	}
}

func (rc *remoteClient) Fetch(c context.Context, id identity.Identity) (cartapi.Cart, error) {
	httpStatus, respPayload, err := rc.sender.Send(c, http.MethodGet, rc.composeURL(id, "/cart"), keyingHeaders(id), nil)
	if err != nil {
		return cartapi.Cart{}, fmt.Errorf("%w: %s", ErrRemoteUnavailable, err)
	}
	if !isSuccess(httpStatus) {
		return cartapi.Cart{}, fmt.Errorf("%w: got status %d", ErrRemoteUnavailable, httpStatus)
	}

	return decodeCart(respPayload)
}

func (rc *remoteClient) AddItem(c context.Context, id identity.Identity, item cartapi.CartItem) (cartapi.Cart, error) {
	reqPayload, err := json.Marshal(item)
	if err != nil {
		return cartapi.Cart{}, fmt.Errorf("error serializing cart item: %s", err)
	}

	httpStatus, respPayload, err := rc.sender.Send(c, http.MethodPost, rc.composeURL(id, "/cart/items"), keyingHeaders(id), reqPayload)
	if err != nil {
		return cartapi.Cart{}, fmt.Errorf("%w: %s", ErrRemoteUnavailable, err)
	}
	if httpStatus == http.StatusBadRequest || httpStatus == http.StatusConflict || httpStatus == http.StatusUnprocessableEntity {
		// business rejection, e.g. stock exhausted: must reach the shopper
		return cartapi.Cart{}, &AddItemRejectedError{
			ProductID: item.ProductID,
			Reason:    rejectionReason(respPayload),
		}
	}
	if !isSuccess(httpStatus) {
		return cartapi.Cart{}, fmt.Errorf("%w: got status %d", ErrRemoteUnavailable, httpStatus)
	}

	// the response body is the authoritative cart: the service arbitrates merges and duplicates
	return decodeCart(respPayload)
}

func (rc *remoteClient) UpdateQuantity(c context.Context, id identity.Identity, productID string, quantity int) error {
	u := rc.composeURL(id, "/cart/items/"+url.PathEscape(productID), "quantity", fmt.Sprintf("%d", quantity))
	httpStatus, _, err := rc.sender.Send(c, http.MethodPut, u, keyingHeaders(id), nil)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrRemoteUnavailable, err)
	}
	if !isSuccess(httpStatus) {
		return fmt.Errorf("%w: got status %d", ErrRemoteUnavailable, httpStatus)
	}

	return nil
}

func (rc *remoteClient) RemoveItem(c context.Context, id identity.Identity, productID string) error {
	httpStatus, _, err := rc.sender.Send(c, http.MethodDelete, rc.composeURL(id, "/cart/items/"+url.PathEscape(productID)), keyingHeaders(id), nil)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrRemoteUnavailable, err)
	}
	if !isSuccess(httpStatus) {
		return fmt.Errorf("%w: got status %d", ErrRemoteUnavailable, httpStatus)
	}

	return nil
}

func (rc *remoteClient) Clear(c context.Context, id identity.Identity) error {
	httpStatus, _, err := rc.sender.Send(c, http.MethodDelete, rc.composeURL(id, "/cart"), keyingHeaders(id), nil)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrRemoteUnavailable, err)
	}
	if !isSuccess(httpStatus) {
		return fmt.Errorf("%w: got status %d", ErrRemoteUnavailable, httpStatus)
	}

	return nil
}

func (rc *remoteClient) composeURL(id identity.Identity, path string, extraParams ...string) string {
	u := rc.baseURL + path

	params := url.Values{}
	if !id.IsAuthenticated() {
		params.Set("session_id", id.SessionToken)
	}
	for i := 0; i+1 < len(extraParams); i += 2 {
		params.Set(extraParams[i], extraParams[i+1])
	}

	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	return u
}

func keyingHeaders(id identity.Identity) map[string]string {
	if id.IsAuthenticated() {
		return map[string]string{"Authorization": "Bearer " + id.AuthToken}
	}

	return nil
}

func isSuccess(httpStatus int) bool {
	return httpStatus >= 200 && httpStatus < 300
}

func decodeCart(payload []byte) (cartapi.Cart, error) {
	c := cartapi.Cart{}
	err := json.Unmarshal(payload, &c)
	if err != nil {
		return cartapi.Cart{}, fmt.Errorf("error parsing cart response: %s", err)
	}

	return c, nil
}

func rejectionReason(payload []byte) string {
	var resp struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(payload, &resp); err == nil {
		if resp.Message != "" {
			return resp.Message
		}
		if resp.Detail != "" {
			return resp.Detail
		}
	}

	return "rejected by cart service"
}
