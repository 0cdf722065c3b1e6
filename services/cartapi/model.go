package cartapi

import "fmt"

// Variation distinguishes otherwise identical products (size, color). The cart
// keeps at most one line per (product, variation) pair; the remote cart service
// is the arbiter of that invariant.
type Variation struct {
	Size  string `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
}

type CartItem struct {
	ProductID string    `json:"product_id"`
	Name      string    `json:"name,omitempty"`
	UnitPrice int64     `json:"unit_price"` // in cents
	Quantity  int       `json:"quantity"`
	ImageURL  string    `json:"image,omitempty"`
	Variation Variation `json:"variation,omitzero"`
}

func (i CartItem) LineTotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

func (i CartItem) SameLine(other CartItem) bool {
	return i.ProductID == other.ProductID && i.Variation == other.Variation
}

type Cart struct {
	Items []CartItem `json:"items"`
}

// ItemCount is derived on every call, never cached.
func (c Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}

	return count
}

// Subtotal is derived on every call, never cached.
func (c Cart) Subtotal() int64 {
	var subtotal int64
	for _, item := range c.Items {
		subtotal += item.LineTotal()
	}

	return subtotal
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func FormatCents(amountInCents int64) string {
	return fmt.Sprintf("%d.%02d", amountInCents/100, amountInCents%100)
}
