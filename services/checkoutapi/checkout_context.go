package checkoutapi

import (
	"time"

	"github.com/SanakShres/emergent-ecommerce/services/identity"
)

// CheckoutContext is persisted when a payment session is started, keyed by the
// session reference, so that the confirmation flow can find the order and the
// identity whose cart must be cleared after settlement.
type CheckoutContext struct {
	Reference      string
	OrderUID       string
	CreatedAt      time.Time
	LastModified   *time.Time
	ReturnURL      string
	AmountInCents  int64
	Currency       string
	ShippingMethod string
	IdentityKind   string
	SessionToken   string `datastore:",noindex"`
	AuthToken      string `datastore:",noindex"`
	PaymentStatus  string
	Settled        bool
}

func (cc CheckoutContext) Identity() identity.Identity {
	return identity.Identity{
		Kind:         identity.Kind(cc.IdentityKind),
		SessionToken: cc.SessionToken,
		AuthToken:    cc.AuthToken,
	}
}
