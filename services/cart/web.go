package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/SanakShres/emergent-ecommerce/lib/mycontext"
	"github.com/SanakShres/emergent-ecommerce/lib/myerrors"
	"github.com/SanakShres/emergent-ecommerce/lib/myhttp"
	"github.com/SanakShres/emergent-ecommerce/lib/mylog"
	"github.com/SanakShres/emergent-ecommerce/services/cartapi"
	"github.com/SanakShres/emergent-ecommerce/services/identity"
)

type WebService struct {
	logger   mylog.Logger
	service  *service
	resolver *identity.Resolver
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(client Client, resolver *identity.Resolver) *WebService {
	logger := mylog.New("cart")

	return &WebService{
		logger:   logger,
		service:  newService(client, logger),
		resolver: resolver,
	}
}

func (s *WebService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/cart", s.cartPage()).Methods("GET")
	router.HandleFunc("/cart", s.clearCartPage()).Methods("DELETE")
	router.HandleFunc("/cart/items", s.addItemPage()).Methods("POST")
	router.HandleFunc("/cart/items/{productID}", s.updateItemPage()).Methods("PUT")
	router.HandleFunc("/cart/items/{productID}", s.removeItemPage()).Methods("DELETE")
}

// Fetch exposes the authoritative cart for in-process collaborators.
func (s *WebService) Fetch(c context.Context, id identity.Identity) (cartapi.Cart, error) {
	return s.service.Fetch(c, id)
}

// Clear is the post-payment side effect invoked by the confirmation poller.
func (s *WebService) Clear(c context.Context, id identity.Identity) error {
	_, err := s.service.Clear(c, id)
	return err
}

// CartView is what the surrounding UI binds to: the items plus the derived
// aggregates, recomputed from the authoritative cart on every response.
type CartView struct {
	Items     []cartapi.CartItem `json:"items"`
	ItemCount int                `json:"itemCount"`
	Subtotal  int64              `json:"subtotal"`
	Stale     bool               `json:"stale,omitempty"`
}

func newCartView(cart cartapi.Cart, stale bool) CartView {
	items := cart.Items
	if items == nil {
		items = []cartapi.CartItem{}
	}

	return CartView{
		Items:     items,
		ItemCount: cart.ItemCount(),
		Subtotal:  cart.Subtotal(),
		Stale:     stale,
	}
}

func (s *WebService) cartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)
		id := s.resolver.ResolveFromRequest(w, r)

		cart, err := s.service.Fetch(c, id)
		// a stale view is acceptable for reads, not an error
		stale := errors.Is(err, ErrRemoteUnavailable)

		responseWriter.Write(c, w, http.StatusOK, newCartView(cart, stale))
	}
}

func (s *WebService) addItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)
		id := s.resolver.ResolveFromRequest(w, r)

		item := cartapi.CartItem{}
		err := json.NewDecoder(r.Body).Decode(&item)
		if err != nil {
			responseWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing cart item: %s", err)))
			return
		}
		if item.ProductID == "" {
			responseWriter.WriteError(c, w, 2, myerrors.NewInvalidInputErrorf("missing product_id"))
			return
		}

		cart, err := s.service.AddItem(c, id, item)
		if err != nil {
			responseWriter.WriteError(c, w, 3, asWebError(err))
			return
		}

		responseWriter.Write(c, w, http.StatusOK, newCartView(cart, false))
	}
}

func (s *WebService) updateItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)
		id := s.resolver.ResolveFromRequest(w, r)

		productID := mux.Vars(r)["productID"]
		quantity, err := strconv.Atoi(r.URL.Query().Get("quantity"))
		if err != nil {
			responseWriter.WriteError(c, w, 1, myerrors.NewInvalidInputErrorf("missing or malformed quantity"))
			return
		}

		cart, err := s.service.UpdateQuantity(c, id, productID, quantity)
		if err != nil {
			responseWriter.WriteError(c, w, 2, asWebError(err))
			return
		}

		responseWriter.Write(c, w, http.StatusOK, newCartView(cart, false))
	}
}

func (s *WebService) removeItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)
		id := s.resolver.ResolveFromRequest(w, r)

		cart, err := s.service.RemoveItem(c, id, mux.Vars(r)["productID"])
		if err != nil {
			responseWriter.WriteError(c, w, 1, asWebError(err))
			return
		}

		responseWriter.Write(c, w, http.StatusOK, newCartView(cart, false))
	}
}

func (s *WebService) clearCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)
		id := s.resolver.ResolveFromRequest(w, r)

		cart, err := s.service.Clear(c, id)
		if err != nil {
			responseWriter.WriteError(c, w, 1, asWebError(err))
			return
		}

		responseWriter.Write(c, w, http.StatusOK, newCartView(cart, false))
	}
}

func asWebError(err error) error {
	if IsAddItemRejected(err) {
		return myerrors.NewConflictError(err)
	}
	if errors.Is(err, ErrRemoteUnavailable) {
		return myerrors.NewUnavailableError(err)
	}

	return myerrors.NewInternalError(err)
}
