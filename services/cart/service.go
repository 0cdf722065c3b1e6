package cart

import (
	"sync"

	"github.com/SanakShres/emergent-ecommerce/lib/mylog"
	"github.com/SanakShres/emergent-ecommerce/services/cartapi"
	"github.com/SanakShres/emergent-ecommerce/services/identity"
)

type service struct {
	client Client
	logger mylog.Logger

	// serializes mutating operations per identity key so that a slow response
	// cannot overwrite the authoritative result of a later mutation; one small
	// mutex per identity key, kept for the process lifetime
	identityLocks sync.Map

	// authenticated keys whose pre-login anonymous cart has been drained;
	// stops the merge from re-fetching an empty anonymous cart on every read
	mergedPredecessors sync.Map

	// last authoritative cart received per identity key; a cache of the remote
	// cart, never the source of truth, evicted when the cart is cleared
	cacheMutex sync.RWMutex
	cache      map[string]cartapi.Cart
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(client Client, logger mylog.Logger) *service {
	return &service{
		client: client,
		logger: logger,
		cache:  map[string]cartapi.Cart{},
	}
}

func (s *service) lockIdentity(id identity.Identity) func() {
	value, _ := s.identityLocks.LoadOrStore(id.Key(), &sync.Mutex{})
	mutex := value.(*sync.Mutex)
	mutex.Lock()

	return mutex.Unlock
}

func (s *service) cachedCart(id identity.Identity) cartapi.Cart {
	s.cacheMutex.RLock()
	defer s.cacheMutex.RUnlock()

	return s.cache[id.Key()]
}

func (s *service) adoptCart(id identity.Identity, authoritative cartapi.Cart) cartapi.Cart {
	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()

	s.cache[id.Key()] = authoritative

	return authoritative
}

func (s *service) dropCart(id identity.Identity) {
	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()

	delete(s.cache, id.Key())
}
