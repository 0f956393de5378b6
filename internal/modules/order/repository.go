package order

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

// Repository defines data access for orders.
type Repository interface {
	// CreateOrder atomically checks and decrements stock for every line,
	// persists the order, and clears the owner's cart. If any line lacks
	// stock nothing is written and no stock changes.
	CreateOrder(ctx context.Context, o *Order) error

	GetOrder(ctx context.Context, id uint64) (*Order, error)
	ListByUser(ctx context.Context, user identity.Principal) ([]*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)

	// UpdateStatus moves an order from one status to another. The update
	// only applies if the order is still in the expected source status.
	UpdateStatus(ctx context.Context, id uint64, from, to Status) error

	// GetProductPrice fetches the current price for a product.
	GetProductPrice(ctx context.Context, productID uint64) (decimal.Decimal, error)

	// OrderTotals reports the order count and the sales sum over
	// non-cancelled orders for dashboard rollups.
	OrderTotals(ctx context.Context) (count uint64, sales decimal.Decimal, err error)
}
