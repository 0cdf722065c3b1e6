package cart

import (
	"errors"
	"fmt"
)

// ErrRemoteUnavailable is a transient condition: the remote cart service could
// not be reached and the previously held local cart is kept as a stale view.
var ErrRemoteUnavailable = errors.New("cart service unavailable")

// AddItemRejectedError is a business rejection (out of stock, unknown product)
// reported by the remote cart service. It must reach the shopper.
type AddItemRejectedError struct {
	ProductID string
	Reason    string
}

func (e *AddItemRejectedError) Error() string {
	return fmt.Sprintf("item %s rejected: %s", e.ProductID, e.Reason)
}

func IsAddItemRejected(err error) bool {
	var rejected *AddItemRejectedError
	return errors.As(err, &rejected)
}
