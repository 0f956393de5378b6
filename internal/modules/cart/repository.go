package cart

import (
	"context"

	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

// Repository defines data access for per-caller carts.
type Repository interface {
	// Get returns every line in the owner's cart.
	Get(ctx context.Context, owner identity.Principal) ([]Item, error)

	// Add increments the owner's quantity for a product, inserting the
	// line if it does not exist yet.
	Add(ctx context.Context, owner identity.Principal, productID, qty uint64) error

	// Set writes an absolute quantity for a product.
	Set(ctx context.Context, owner identity.Principal, productID, qty uint64) error

	// Remove deletes the line for a product. Removing an absent line is
	// not an error.
	Remove(ctx context.Context, owner identity.Principal, productID uint64) error

	// Clear empties the owner's cart.
	Clear(ctx context.Context, owner identity.Principal) error
}
