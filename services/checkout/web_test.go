package checkout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/SanakShres/emergent-ecommerce/lib/mypublisher"
	"github.com/SanakShres/emergent-ecommerce/lib/mystore"
	"github.com/SanakShres/emergent-ecommerce/lib/mytime"
	"github.com/SanakShres/emergent-ecommerce/lib/myuuid"
	"github.com/SanakShres/emergent-ecommerce/services/cartapi"
	"github.com/SanakShres/emergent-ecommerce/services/checkout/checkoutevents"
	"github.com/SanakShres/emergent-ecommerce/services/checkoutapi"
	"github.com/SanakShres/emergent-ecommerce/services/identity"
	"github.com/SanakShres/emergent-ecommerce/services/payment"
)

var (
	anonymousShopper = identity.Identity{
		Kind:         identity.KindAnonymous,
		SessionToken: "session-abc",
	}

	filledCart = cartapi.Cart{
		Items: []cartapi.CartItem{
			{ProductID: "p1", Name: "Sneaker", UnitPrice: 2500, Quantity: 3, Variation: cartapi.Variation{Size: "42"}},
			{ProductID: "p2", Name: "Socks", UnitPrice: 1250, Quantity: 2},
		},
	}

	checkoutFormBody = `shippingMethod=express&shippingInfo.firstName=Marc&shippingInfo.lastName=Grol&shippingInfo.email=marc@home.nl&shippingInfo.street=Main+1&shippingInfo.city=Atlanta&shippingInfo.state=GA&shippingInfo.postalCode=30301&shippingInfo.country=US`
)

func TestCheckoutService(t *testing.T) {

	t.Run("Summary prices the current cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, carts, _, _, _, _ := setup(t, ctrl)

		// given
		carts.EXPECT().Fetch(gomock.Any(), anonymousShopper).Return(filledCart, nil)

		// when
		request, err := http.NewRequest(http.MethodGet, "/checkout/summary?method=express", nil)
		assert.NoError(t, err)
		request.AddCookie(&http.Cookie{Name: identity.SessionCookieName, Value: "session-abc"})
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		got := response.Body.String()
		assert.Contains(t, got, `"subtotal": 10000`)
		assert.Contains(t, got, `"tax": 1000`)
		assert.Contains(t, got, `"shippingCost": 2500`)
		assert.Contains(t, got, `"total": 13500`)
	})

	t.Run("Summary with unknown shipping method fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _, _, _ := setup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodGet, "/checkout/summary?method=drone", nil)
		assert.NoError(t, err)
		request.AddCookie(&http.Cookie{Name: identity.SessionCookieName, Value: "session-abc"})
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 400, response.Code)
	})

	t.Run("Start checkout hands off to the hosted payment page", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, carts, orders, gateway, nower, publisher := setup(t, ctrl)

		// given
		carts.EXPECT().Fetch(gomock.Any(), anonymousShopper).Return(filledCart, nil)
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		orders.EXPECT().Create(gomock.Any(), anonymousShopper, gomock.Any()).Return(Order{
			ID:           "order-1",
			OrderNumber:  "ORD-0001",
			TotalInCents: 13500,
		}, nil)
		gateway.EXPECT().Start(gomock.Any(), payment.CheckoutRequest{
			OrderID:      "order-1",
			Items:        filledCart.Items,
			TotalInCents: 13500,
			Currency:     "usd",
			Description:  "Order ORD-0001 (135.00 usd)",
			ReturnURL:    "http://localhost:8888/checkout/confirmation",
			ShopperEmail: "marc@home.nl",
		}).Return(payment.Session{
			Reference: "cs_123",
			URL:       "https://pay.example.com/cs_123",
		}, nil)
		publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, checkoutevents.CheckoutStarted{
			OrderUID:      "order-1",
			Reference:     "cs_123",
			ProviderName:  "testprovider",
			AmountInCents: 13500,
			Currency:      "usd",
			ShopperKey:    anonymousShopper.Key(),
		}).Return(nil)

		// when
		request, err := http.NewRequest(http.MethodPost, "/checkout", strings.NewReader(checkoutFormBody))
		assert.NoError(t, err)
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		request.Host = "localhost:8888"
		request.AddCookie(&http.Cookie{Name: identity.SessionCookieName, Value: "session-abc"})
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 303, response.Code)
		assert.Equal(t, "https://pay.example.com/cs_123", response.Header().Get("Location"))

		checkoutContext, exists, _ := storer.Get(ctx, "cs_123")
		assert.True(t, exists)
		assert.Equal(t, "order-1", checkoutContext.OrderUID)
		assert.Equal(t, int64(13500), checkoutContext.AmountInCents)
		assert.Equal(t, string(identity.KindAnonymous), checkoutContext.IdentityKind)
		assert.Equal(t, "session-abc", checkoutContext.SessionToken)
		assert.False(t, checkoutContext.Settled)
	})

	t.Run("Start checkout with empty cart redirects back to the shop", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, carts, _, _, _, _ := setup(t, ctrl)

		// given
		carts.EXPECT().Fetch(gomock.Any(), anonymousShopper).Return(cartapi.Cart{}, nil)

		// when
		request, err := http.NewRequest(http.MethodPost, "/checkout", strings.NewReader(checkoutFormBody))
		assert.NoError(t, err)
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		request.AddCookie(&http.Cookie{Name: identity.SessionCookieName, Value: "session-abc"})
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 303, response.Code)
		assert.Equal(t, "/products", response.Header().Get("Location"))
	})

	t.Run("Start checkout fails when the order cannot be created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, carts, orders, _, nower, _ := setup(t, ctrl)

		// given
		carts.EXPECT().Fetch(gomock.Any(), anonymousShopper).Return(filledCart, nil)
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		orders.EXPECT().Create(gomock.Any(), anonymousShopper, gomock.Any()).Return(Order{}, assert.AnError)

		// when
		request, err := http.NewRequest(http.MethodPost, "/checkout", strings.NewReader(checkoutFormBody))
		assert.NoError(t, err)
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		request.AddCookie(&http.Cookie{Name: identity.SessionCookieName, Value: "session-abc"})
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 500, response.Code)
	})
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, mystore.Store[checkoutapi.CheckoutContext],
	*MockCartFetcher, *MockOrderClient, *payment.MockGateway, *mytime.MockNower, *mypublisher.MockPublisher) {
	c := context.TODO()
	carts := NewMockCartFetcher(ctrl)
	orders := NewMockOrderClient(ctrl)
	gateway := payment.NewMockGateway(ctrl)
	nower := mytime.NewMockNower(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)
	storer, _, err := mystore.New[checkoutapi.CheckoutContext](c)
	assert.NoError(t, err)

	resolver := identity.NewResolver(myuuid.RealUUIDer{})
	sut := NewWebService(carts, orders, gateway, storer, publisher, nower, resolver, "testprovider", "usd")
	router := mux.NewRouter()
	sut.RegisterEndpoints(c, router)

	return c, router, storer, carts, orders, gateway, nower, publisher
}
