package confirmation

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/SanakShres/emergent-ecommerce/lib/mycontext"
	"github.com/SanakShres/emergent-ecommerce/lib/myhttp"
	"github.com/SanakShres/emergent-ecommerce/lib/mylog"
	"github.com/SanakShres/emergent-ecommerce/lib/mypublisher"
	"github.com/SanakShres/emergent-ecommerce/lib/mystore"
	"github.com/SanakShres/emergent-ecommerce/lib/mytime"
	"github.com/SanakShres/emergent-ecommerce/services/checkoutapi"
	"github.com/SanakShres/emergent-ecommerce/services/payment"
)

type WebService struct {
	logger  mylog.Logger
	service *service
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(gateway payment.Gateway, clearer CartClearer, checkoutStore mystore.Store[checkoutapi.CheckoutContext],
	publisher mypublisher.Publisher, nower mytime.Nower) *WebService {
	logger := mylog.New("confirmation")

	return &WebService{
		logger:  logger,
		service: newService(gateway, clearer, checkoutStore, publisher, nower, logger),
	}
}

func (s *WebService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/checkout/confirmation", s.confirmationPage()).Methods("GET")
}

// confirmationPage is where the hosted payment page sends the shopper back to.
// It blocks for at most the bounded poll window; a shopper navigating away
// cancels the request context and with it any scheduled poll.
func (s *WebService) confirmationPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		reference := r.URL.Query().Get("session_id")
		if reference == "" {
			reference = r.URL.Query().Get("reference")
		}

		outcome, err := s.service.Confirm(c, reference)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				// the shopper is gone, nobody is listening anymore
				return
			}
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		// giving up is a neutral "could not confirm yet", not an error
		responseWriter.Write(c, w, http.StatusOK, outcome)
	}
}
