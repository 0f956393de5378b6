package order

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/tmwanza/storefront-backend/internal/apperr"
	"github.com/tmwanza/storefront-backend/internal/modules/cart"
	"github.com/tmwanza/storefront-backend/internal/modules/catalog"
	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

// MemoryRepository is the in-memory order store. Stock linearization is
// delegated to the catalog repository's all-or-nothing DecrementStock, so
// placement never leaves partial state behind.
type MemoryRepository struct {
	mu       sync.Mutex
	orders   map[uint64]Order
	nextID   uint64
	products *catalog.MemoryRepository
	carts    *cart.MemoryRepository
}

// NewMemoryRepository creates an in-memory order repository backed by the
// in-memory catalog and cart stores.
func NewMemoryRepository(products *catalog.MemoryRepository, carts *cart.MemoryRepository) *MemoryRepository {
	return &MemoryRepository{
		orders:   make(map[uint64]Order),
		products: products,
		carts:    carts,
	}
}

func (r *MemoryRepository) CreateOrder(ctx context.Context, o *Order) error {
	quantities := make(map[uint64]uint64, len(o.Items))
	for _, item := range o.Items {
		quantities[item.ProductID] += item.Quantity
	}
	if err := r.products.DecrementStock(ctx, quantities); err != nil {
		return err
	}
	// Stock is committed; the remaining in-memory writes cannot fail.
	r.mu.Lock()
	r.nextID++
	o.ID = r.nextID
	r.orders[o.ID] = snapshot(o)
	r.mu.Unlock()
	return r.carts.Clear(ctx, o.UserID)
}

func (r *MemoryRepository) GetOrder(ctx context.Context, id uint64) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, apperr.NotFound("order %d not found", id)
	}
	out := snapshot(&o)
	return &out, nil
}

func (r *MemoryRepository) ListByUser(ctx context.Context, user identity.Principal) ([]*Order, error) {
	return r.list(func(o Order) bool { return o.UserID == user })
}

func (r *MemoryRepository) ListAll(ctx context.Context) ([]*Order, error) {
	return r.list(func(Order) bool { return true })
}

func (r *MemoryRepository) UpdateStatus(ctx context.Context, id uint64, from, to Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return apperr.NotFound("order %d not found", id)
	}
	if o.Status != from {
		return apperr.InvalidTransition("order %d is no longer %s", id, from)
	}
	o.Status = to
	r.orders[id] = o
	return nil
}

func (r *MemoryRepository) GetProductPrice(ctx context.Context, productID uint64) (decimal.Decimal, error) {
	p, err := r.products.GetProduct(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	return p.Price, nil
}

func (r *MemoryRepository) OrderTotals(ctx context.Context) (uint64, decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sales := decimal.Zero
	for _, o := range r.orders {
		if o.Status != StatusCancelled {
			sales = sales.Add(o.Total)
		}
	}
	return uint64(len(r.orders)), sales, nil
}

func (r *MemoryRepository) list(keep func(Order) bool) ([]*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Order
	for _, o := range r.orders {
		if keep(o) {
			c := snapshot(&o)
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// snapshot copies an order including its line items, so stored state never
// aliases what callers hold.
func snapshot(o *Order) Order {
	c := *o
	c.Items = make([]cart.Item, len(o.Items))
	copy(c.Items, o.Items)
	return c
}
