package cart

// Item is one line of a caller's cart: a product reference and how many
// units of it. Quantity is always at least 1; a zero-quantity update
// removes the line instead of storing it.
type Item struct {
	ProductID uint64 `json:"productId"`
	Quantity  uint64 `json:"quantity"`
}

// AddRequest adds quantity to the caller's cart, merging with any
// existing line for the same product.
type AddRequest struct {
	ProductID uint64 `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

// UpdateRequest sets the absolute quantity for one product.
type UpdateRequest struct {
	Quantity int64 `json:"quantity"`
}
