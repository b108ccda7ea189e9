package domain

// =============================================================================
// CART DOMAIN TYPES
// =============================================================================

// Cart domain errors.
var (
	ErrUnauthenticated = &Error{Code: EUNAUTHORIZED, Message: "Sign in to complete your purchase"}
	ErrEmptyCart       = &Error{Code: EINVALID, Message: "Cart is empty"}
	ErrCheckoutPending = &Error{Code: ECONFLICT, Message: "A checkout is already in progress"}
)

// ViewMode selects which screen the storefront UI renders.
type ViewMode string

const (
	ViewModeProducts ViewMode = "products"
	ViewModeCart     ViewMode = "cart"
)

// Valid reports whether v is a known view mode.
func (v ViewMode) Valid() bool {
	return v == ViewModeProducts || v == ViewModeCart
}

// LineItem is one product entry in a cart. The product fields are a snapshot
// captured when the item was first added; later catalog edits do not touch it.
type LineItem struct {
	ProductID  string   `json:"id"`
	Name       string   `json:"name"`
	PriceCents int64    `json:"price"`
	Category   Category `json:"category"`
	ImageURL   string   `json:"image,omitempty"`
	Quantity   int      `json:"quantity"`
}

// Subtotal returns price x quantity for this line.
func (li LineItem) Subtotal() int64 {
	return li.PriceCents * int64(li.Quantity)
}

// Cart is an insertion-ordered collection of line items, at most one per
// product ID.
type Cart []LineItem

// Find returns the index of the line item for productID, or -1.
func (c Cart) Find(productID string) int {
	for i := range c {
		if c[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// ItemCount returns the sum of all line item quantities.
func (c Cart) ItemCount() int {
	var n int
	for _, li := range c {
		n += li.Quantity
	}
	return n
}

// TotalCents returns the sum of price x quantity over all line items,
// using each line's captured price.
func (c Cart) TotalCents() int64 {
	var total int64
	for _, li := range c {
		total += li.Subtotal()
	}
	return total
}

// Clone returns a deep copy of the cart. Snapshots handed to collaborators
// must not alias the live cart slice.
func (c Cart) Clone() Cart {
	if c == nil {
		return nil
	}
	out := make(Cart, len(c))
	copy(out, c)
	return out
}
