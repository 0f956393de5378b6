// Package wishlist owns the per-caller set of saved product ids.
package wishlist

import (
	"context"

	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

// Repository defines data access for per-caller wishlists.
type Repository interface {
	// Get returns the owner's saved product ids.
	Get(ctx context.Context, owner identity.Principal) ([]uint64, error)

	// Add saves a product id; adding a present id is a no-op.
	Add(ctx context.Context, owner identity.Principal, productID uint64) error

	// Remove drops a product id; removing an absent id is a no-op.
	Remove(ctx context.Context, owner identity.Principal, productID uint64) error
}
