package checkoutapi

import (
	"net/http"
	"net/url"

	formcodec "github.com/go-playground/form/v4"

	"github.com/SanakShres/emergent-ecommerce/lib/myerrors"
)

// CheckoutForm is what the checkout page posts: the shipping address and the
// chosen shipping method. The cart itself is never posted, the authoritative
// cart is fetched server-side.
type CheckoutForm struct {
	ShippingMethod string       `form:"shippingMethod"`
	ShippingInfo   ShippingInfo `form:"shippingInfo"`
}

type ShippingInfo struct {
	FirstName  string `form:"firstName" json:"first_name"`
	LastName   string `form:"lastName" json:"last_name"`
	Email      string `form:"email" json:"email"`
	Street     string `form:"street" json:"street"`
	City       string `form:"city" json:"city"`
	State      string `form:"state" json:"state"`
	PostalCode string `form:"postalCode" json:"postal_code"`
	Country    string `form:"country" json:"country"`
	Phone      string `form:"phone" json:"phone"`
}

func NewFromRequest(r *http.Request) (CheckoutForm, error) {
	err := r.ParseForm()
	if err != nil {
		return CheckoutForm{}, myerrors.NewInvalidInputError(err)
	}

	return NewFromValues(r.Form)
}

func NewFromValues(values url.Values) (CheckoutForm, error) {
	checkoutForm := CheckoutForm{}
	err := formcodec.NewDecoder().Decode(&checkoutForm, values)
	if err != nil {
		return checkoutForm, myerrors.NewInvalidInputError(err)
	}

	return checkoutForm, nil
}
