package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/SanakShres/emergent-ecommerce/lib/myhttpclient"
	"github.com/SanakShres/emergent-ecommerce/lib/mypublisher"
	"github.com/SanakShres/emergent-ecommerce/lib/mypubsub"
	"github.com/SanakShres/emergent-ecommerce/lib/mystore"
	"github.com/SanakShres/emergent-ecommerce/lib/mytime"
	"github.com/SanakShres/emergent-ecommerce/lib/myuuid"
	"github.com/SanakShres/emergent-ecommerce/services/cart"
	"github.com/SanakShres/emergent-ecommerce/services/checkout"
	"github.com/SanakShres/emergent-ecommerce/services/checkout/checkoutevents"
	"github.com/SanakShres/emergent-ecommerce/services/checkoutapi"
	"github.com/SanakShres/emergent-ecommerce/services/confirmation"
	"github.com/SanakShres/emergent-ecommerce/services/identity"
	"github.com/SanakShres/emergent-ecommerce/services/payment"
)

func main() {
	c := context.Background()

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}
	sender := myhttpclient.New()

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, nower, uuider)
	if err != nil {
		log.Fatalf("Error creating publisher: %s", err)
	}
	defer publisherCleanup()

	err = publisher.CreateTopic(c, checkoutevents.TopicName)
	if err != nil {
		log.Fatalf("Error creating topic %s: %s", checkoutevents.TopicName, err)
	}

	checkoutStore, storeCleanup, err := mystore.New[checkoutapi.CheckoutContext](c)
	if err != nil {
		log.Fatalf("Error creating checkout store: %s", err)
	}
	defer storeCleanup()

	gateway, err := createPaymentGateway(sender)
	if err != nil {
		log.Fatalf("Error creating payment gateway: %s", err)
	}

	resolver := identity.NewResolver(uuider)

	router := mux.NewRouter()

	cartService := cart.NewWebService(cart.NewClient(getenvOrDefault("CART_SERVICE_URL", "http://localhost:8000/api"), sender), resolver)
	cartService.RegisterEndpoints(c, router)

	orderClient := checkout.NewOrderClient(getenvOrDefault("ORDER_SERVICE_URL", "http://localhost:8000/api"), sender)
	checkoutService := checkout.NewWebService(cartService, orderClient, gateway, checkoutStore, publisher,
		nower, resolver, os.Getenv("PAYMENT_PROVIDER"), getenvOrDefault("CURRENCY", "usd"))
	checkoutService.RegisterEndpoints(c, router)

	confirmationService := confirmation.NewWebService(gateway, cartService, checkoutStore, publisher, nower)
	confirmationService.RegisterEndpoints(c, router)

	startWebServerBlocking(router)
}

func createPaymentGateway(sender myhttpclient.HTTPSender) (payment.Gateway, error) {
	currency := getenvOrDefault("CURRENCY", "usd")

	switch os.Getenv("PAYMENT_PROVIDER") {
	case "stripe":
		return payment.NewStripeGateway(os.Getenv("STRIPE_API_KEY"), currency), nil
	case "mollie":
		return payment.NewMollieGateway(os.Getenv("MOLLIE_API_KEY"), currency)
	default:
		return payment.NewBackendGateway(getenvOrDefault("PAYMENT_SERVICE_URL", "http://localhost:8000/api"), sender), nil
	}
}

func startWebServerBlocking(router *mux.Router) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}

func getenvOrDefault(name string, defaultValue string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}

	return defaultValue
}
