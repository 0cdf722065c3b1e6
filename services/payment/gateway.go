package payment

import (
	"context"

	"github.com/SanakShres/emergent-ecommerce/services/cartapi"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusFailed  Status = "failed"
	StatusExpired Status = "expired"
)

// Session is a hosted payment session: the shopper is handed off to URL and
// comes back carrying Reference.
type Session struct {
	Reference string
	URL       string
}

// Settlement is the terminal outcome of a payment attempt as reported by the
// gateway.
type Settlement struct {
	Reference     string
	Status        Status
	AmountInCents int64
	Currency      string
}

// CheckoutRequest carries what every provider needs to start a hosted checkout.
type CheckoutRequest struct {
	OrderID      string
	Items        []cartapi.CartItem
	TotalInCents int64
	Currency     string
	Description  string
	ReturnURL    string
	ShopperEmail string
}

// Gateway is the port to the external payment provider. Providers differ in
// protocol only; selection happens at wiring time.
//
//go:generate mockgen -source=gateway.go -package payment -destination gateway_mock.go Gateway
type Gateway interface {
	Start(c context.Context, request CheckoutRequest) (Session, error)
	SettlementStatus(c context.Context, reference string) (Settlement, error)
}
