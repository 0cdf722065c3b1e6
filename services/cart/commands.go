package cart

import (
	"context"
	"errors"

	"github.com/SanakShres/emergent-ecommerce/lib/mylog"
	"github.com/SanakShres/emergent-ecommerce/services/cartapi"
	"github.com/SanakShres/emergent-ecommerce/services/identity"
)

// Fetch retrieves the authoritative cart for the identity. On remote failure
// the previously held local cart is returned unchanged together with
// ErrRemoteUnavailable: a stale view is acceptable for reads.
func (s *service) Fetch(c context.Context, id identity.Identity) (cartapi.Cart, error) {
	s.mergeAnonymousCart(c, id)

	fetched, err := s.client.Fetch(c, id)
	if err != nil {
		s.logger.Log(c, id.Key(), mylog.SeverityWarn, "Fetch failed, keeping stale cart: %s", err)
		return s.cachedCart(id), ErrRemoteUnavailable
	}

	return s.adoptCart(id, fetched), nil
}

// AddItem submits the item and replaces the local cart with the service's
// authoritative response. A rejection (e.g. stock exhausted) propagates to the
// caller and leaves the local cart unchanged.
func (s *service) AddItem(c context.Context, id identity.Identity, item cartapi.CartItem) (cartapi.Cart, error) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	unlock := s.lockIdentity(id)
	defer unlock()

	s.logger.Log(c, id.Key(), mylog.SeverityInfo, "Add %d x product %s to cart", item.Quantity, item.ProductID)

	authoritative, err := s.client.AddItem(c, id, item)
	if err != nil {
		return s.cachedCart(id), err
	}

	return s.adoptCart(id, authoritative), nil
}

// UpdateQuantity clamps the quantity to a minimum of 1, submits the update and
// re-fetches to resync. The extra round trip guards against concurrent
// external mutation that the update response would not reflect.
func (s *service) UpdateQuantity(c context.Context, id identity.Identity, productID string, quantity int) (cartapi.Cart, error) {
	if quantity < 1 {
		quantity = 1
	}

	unlock := s.lockIdentity(id)
	defer unlock()

	s.logger.Log(c, id.Key(), mylog.SeverityInfo, "Update product %s to quantity %d", productID, quantity)

	err := s.client.UpdateQuantity(c, id, productID, quantity)
	if err != nil {
		return s.cachedCart(id), err
	}

	return s.resync(c, id)
}

// RemoveItem removes the line and resyncs.
func (s *service) RemoveItem(c context.Context, id identity.Identity, productID string) (cartapi.Cart, error) {
	unlock := s.lockIdentity(id)
	defer unlock()

	s.logger.Log(c, id.Key(), mylog.SeverityInfo, "Remove product %s from cart", productID)

	err := s.client.RemoveItem(c, id, productID)
	if err != nil {
		return s.cachedCart(id), err
	}

	return s.resync(c, id)
}

// Clear empties the cart both remotely and locally. Used on explicit shopper
// action and as the side effect of a confirmed payment.
func (s *service) Clear(c context.Context, id identity.Identity) (cartapi.Cart, error) {
	unlock := s.lockIdentity(id)
	defer unlock()

	s.logger.Log(c, id.Key(), mylog.SeverityInfo, "Clear cart")

	err := s.client.Clear(c, id)
	if err != nil {
		return s.cachedCart(id), err
	}

	s.dropCart(id)

	return cartapi.Cart{}, nil
}

func (s *service) resync(c context.Context, id identity.Identity) (cartapi.Cart, error) {
	fetched, err := s.client.Fetch(c, id)
	if err != nil {
		s.logger.Log(c, id.Key(), mylog.SeverityWarn, "Resync failed, keeping stale cart: %s", err)
		return s.cachedCart(id), ErrRemoteUnavailable
	}

	return s.adoptCart(id, fetched), nil
}

// mergeAnonymousCart replays the lines of the pre-login anonymous cart into
// the authenticated cart and clears the anonymous one. The remote service
// arbitrates duplicates. Once the anonymous cart has been drained the
// predecessor key is retired, so later reads skip the remote fetch entirely.
func (s *service) mergeAnonymousCart(c context.Context, id identity.Identity) {
	predecessor, ok := id.AnonymousPredecessor()
	if !ok {
		return
	}
	if _, retired := s.mergedPredecessors.Load(id.Key()); retired {
		return
	}

	// serialize on the authenticated key: a concurrent merge would replay lines twice
	unlock := s.lockIdentity(id)
	defer unlock()

	if _, retired := s.mergedPredecessors.Load(id.Key()); retired {
		return
	}

	anonymousCart, err := s.client.Fetch(c, predecessor)
	if err != nil {
		// leave the anonymous cart intact, the next fetch retries the merge
		return
	}
	if anonymousCart.IsEmpty() {
		s.retirePredecessor(id, predecessor)
		return
	}

	s.logger.Log(c, id.Key(), mylog.SeverityInfo, "Merging %d anonymous cart lines into authenticated cart", len(anonymousCart.Items))

	for _, item := range anonymousCart.Items {
		_, err = s.client.AddItem(c, id, item)
		if err != nil {
			if errors.Is(err, ErrRemoteUnavailable) {
				// leave the anonymous cart intact, the next fetch retries the merge
				return
			}
			// a rejected line cannot enter the authenticated cart: log and drop it
			s.logger.Log(c, id.Key(), mylog.SeverityWarn, "Skipping rejected line during merge: %s", err)
		}
	}

	err = s.client.Clear(c, predecessor)
	if err != nil {
		s.logger.Log(c, id.Key(), mylog.SeverityWarn, "Could not clear merged anonymous cart: %s", err)
		return
	}

	s.retirePredecessor(id, predecessor)
}

func (s *service) retirePredecessor(id identity.Identity, predecessor identity.Identity) {
	s.mergedPredecessors.Store(id.Key(), true)
	s.dropCart(predecessor)
}
