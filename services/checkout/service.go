package checkout

import (
	"context"

	"github.com/SanakShres/emergent-ecommerce/lib/mylog"
	"github.com/SanakShres/emergent-ecommerce/lib/mypublisher"
	"github.com/SanakShres/emergent-ecommerce/lib/mystore"
	"github.com/SanakShres/emergent-ecommerce/lib/mytime"
	"github.com/SanakShres/emergent-ecommerce/services/cartapi"
	"github.com/SanakShres/emergent-ecommerce/services/checkoutapi"
	"github.com/SanakShres/emergent-ecommerce/services/identity"
	"github.com/SanakShres/emergent-ecommerce/services/payment"
)

// CartFetcher provides the authoritative cart snapshot that pricing and order
// creation consume.
//
//go:generate mockgen -source=service.go -package checkout -destination service_mock.go CartFetcher
type CartFetcher interface {
	Fetch(c context.Context, id identity.Identity) (cartapi.Cart, error)
}

type service struct {
	carts         CartFetcher
	orders        OrderClient
	gateway       payment.Gateway
	checkoutStore mystore.Store[checkoutapi.CheckoutContext]
	publisher     mypublisher.Publisher
	nower         mytime.Nower
	logger        mylog.Logger
	providerName  string
	currency      string
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(carts CartFetcher, orders OrderClient, gateway payment.Gateway, checkoutStore mystore.Store[checkoutapi.CheckoutContext],
	publisher mypublisher.Publisher, nower mytime.Nower, logger mylog.Logger, providerName string, currency string) *service {
	return &service{
		carts:         carts,
		orders:        orders,
		gateway:       gateway,
		checkoutStore: checkoutStore,
		publisher:     publisher,
		nower:         nower,
		logger:        logger,
		providerName:  providerName,
		currency:      currency,
	}
}
