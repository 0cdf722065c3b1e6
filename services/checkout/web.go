package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/SanakShres/emergent-ecommerce/lib/mycontext"
	"github.com/SanakShres/emergent-ecommerce/lib/myerrors"
	"github.com/SanakShres/emergent-ecommerce/lib/myhttp"
	"github.com/SanakShres/emergent-ecommerce/lib/mylog"
	"github.com/SanakShres/emergent-ecommerce/lib/mypublisher"
	"github.com/SanakShres/emergent-ecommerce/lib/mystore"
	"github.com/SanakShres/emergent-ecommerce/lib/mytime"
	"github.com/SanakShres/emergent-ecommerce/services/checkoutapi"
	"github.com/SanakShres/emergent-ecommerce/services/identity"
	"github.com/SanakShres/emergent-ecommerce/services/payment"
)

type WebService struct {
	logger   mylog.Logger
	service  *service
	resolver *identity.Resolver
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(carts CartFetcher, orders OrderClient, gateway payment.Gateway,
	checkoutStore mystore.Store[checkoutapi.CheckoutContext], publisher mypublisher.Publisher,
	nower mytime.Nower, resolver *identity.Resolver, providerName string, currency string) *WebService {
	logger := mylog.New("checkout")

	return &WebService{
		logger:   logger,
		service:  newService(carts, orders, gateway, checkoutStore, publisher, nower, logger, providerName, currency),
		resolver: resolver,
	}
}

func (s *WebService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/checkout/summary", s.summaryPage()).Methods("GET")
	router.HandleFunc("/checkout", s.startCheckoutPage()).Methods("POST")
}

// summaryPage prices the current cart for the checkout page. The summary is
// recomputed per request: switching the shipping method re-queries.
func (s *WebService) summaryPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)
		id := s.resolver.ResolveFromRequest(w, r)

		method, err := ParseShippingMethod(r.URL.Query().Get("method"))
		if err != nil {
			responseWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		summary, err := s.service.summarize(c, id, method)
		if err != nil {
			responseWriter.WriteError(c, w, 2, myerrors.NewInternalError(err))
			return
		}

		responseWriter.Write(c, w, http.StatusOK, summary)
	}
}

// startCheckoutPage submits the order and redirects the shopper to the hosted
// payment page. This is a full hand-off: nothing more happens here until the
// shopper returns on the confirmation URL.
func (s *WebService) startCheckoutPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)
		id := s.resolver.ResolveFromRequest(w, r)

		form, err := checkoutapi.NewFromRequest(r)
		if err != nil {
			responseWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing checkout form: %s", err)))
			return
		}

		returnURL := fmt.Sprintf("%s/checkout/confirmation", myhttp.HostnameWithScheme(r))

		redirectURL, err := s.service.startCheckout(c, id, form, returnURL)
		if err != nil {
			if errors.Is(err, ErrEmptyCart) {
				// the flow must not be entered with an empty cart
				http.Redirect(w, r, "/products", http.StatusSeeOther)
				return
			}
			responseWriter.WriteError(c, w, 2, asWebError(err))
			return
		}

		http.Redirect(w, r, redirectURL, http.StatusSeeOther)
	}
}

func asWebError(err error) error {
	if errors.Is(err, ErrCheckoutFailed) {
		return myerrors.NewInternalError(err)
	}

	return err
}
